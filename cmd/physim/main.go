package main

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/jeongseonghan/ofdm80211/internal/ofdm"
	"github.com/jeongseonghan/ofdm80211/internal/rx"
	"github.com/jeongseonghan/ofdm80211/internal/wifi"
)

// physim builds frames and plays them straight through the receive chain,
// reporting how many survive the trip. Useful as a smoke test of the whole
// PHY without any hardware attached.

var rateNames = map[string]wifi.Rate{
	"1/2-bpsk":  wifi.Rate12BPSK,
	"2/3-bpsk":  wifi.Rate23BPSK,
	"3/4-bpsk":  wifi.Rate34BPSK,
	"1/2-qpsk":  wifi.Rate12QPSK,
	"2/3-qpsk":  wifi.Rate23QPSK,
	"3/4-qpsk":  wifi.Rate34QPSK,
	"1/2-qam16": wifi.Rate12QAM16,
	"2/3-qam16": wifi.Rate23QAM16,
	"3/4-qam16": wifi.Rate34QAM16,
	"2/3-qam64": wifi.Rate23QAM64,
	"3/4-qam64": wifi.Rate34QAM64,
}

func main() {
	rateName := pflag.String("rate", "3/4-qam16", "PHY rate")
	numFrames := pflag.Int("frames", 100, "frames to simulate")
	chunkSize := pflag.Int("chunk", 4096, "samples per batch")
	repeat := pflag.Int("repeat", 15, "payload text repetitions")
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "physim"})

	rate, ok := rateNames[strings.ToLower(*rateName)]
	if !ok {
		logger.Fatal("unknown rate", "rate", *rateName)
	}

	text := "I'm a little tea pot, short and stout.....here is my handle....." +
		"blah blah blah.....this rhyme sucks!"
	payload := bytes.Repeat([]byte(text), *repeat)

	builder := ofdm.NewFrameBuilder()
	frame := builder.BuildFrame(payload, rate)

	// Concatenate the frames and pad generously with zeros so the last
	// frame clears the pipeline.
	padLength := len(frame) * 4
	stream := make([]complex128, 0, len(frame)*(*numFrames)+padLength)
	for i := 0; i < *numFrames; i++ {
		stream = append(stream, frame...)
	}
	stream = append(stream, make([]complex128, padLength)...)

	logger.Info("transmitting",
		"frames", *numFrames, "rate", rate.String(),
		"payload_bytes", len(payload), "samples", len(stream))

	chain := rx.NewChain(0)
	defer chain.Halt()

	start := time.Now()
	count, mismatched := 0, 0
	for x := 0; x < len(stream); x += *chunkSize {
		end := x + *chunkSize
		if end > len(stream) {
			end = len(stream)
		}
		chunk := make([]complex128, end-x)
		copy(chunk, stream[x:end])

		payloads, _ := chain.ProcessSamples(chunk)
		for _, p := range payloads {
			count++
			if !bytes.Equal(p, payload) {
				mismatched++
			}
		}
	}
	elapsed := time.Since(start)

	logger.Info("done",
		"received", count, "mismatched", mismatched,
		"elapsed", elapsed,
		"throughput_msps", float64(len(stream))/elapsed.Seconds()/1e6)
	if count != *numFrames {
		logger.Warn("frame count mismatch", "sent", *numFrames, "received", count)
	}
}
