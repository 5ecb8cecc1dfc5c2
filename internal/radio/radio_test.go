package radio

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeongseonghan/ofdm80211/internal/sdr"
	"github.com/jeongseonghan/ofdm80211/internal/wifi"
)

func TestTransmitterReceiverLoopback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = 4096

	sink := &sdr.BufferSink{}
	tx := NewTransmitter(sink, cfg)

	payloads := [][]byte{
		[]byte("first frame"),
		bytes.Repeat([]byte("second frame "), 40),
		[]byte("third frame, the last one"),
	}
	for _, p := range payloads {
		require.NoError(t, tx.Send(p, wifi.Rate34QAM16))
		// quiet gap between bursts
		require.NoError(t, sink.SendBurstSync(make([]complex128, 500)))
	}

	var mu sync.Mutex
	var received [][]byte
	receiver := NewReceiver(sdr.NewBufferSource(sink.Samples), func(frames [][]byte) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, frames...)
	}, cfg)

	receiver.Start()
	receiver.Wait()
	receiver.Halt()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, len(payloads))
	for i := range payloads {
		assert.Equal(t, payloads[i], received[i], "frame %d", i)
	}
}

func TestTransmitterRejectsOversizedPayload(t *testing.T) {
	tx := NewTransmitter(&sdr.BufferSink{}, DefaultConfig())
	assert.Error(t, tx.Send(make([]byte, wifi.MaxFrameSize+1), wifi.Rate12BPSK))
	assert.Error(t, tx.Send(nil, wifi.Rate12BPSK))
}

func TestTransmitterAmplitudeScaling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TxAmplitude = 0.5

	full := &sdr.BufferSink{}
	require.NoError(t, NewTransmitter(full, DefaultConfig()).Send([]byte("x"), wifi.Rate12BPSK))

	scaled := &sdr.BufferSink{}
	require.NoError(t, NewTransmitter(scaled, cfg).Send([]byte("x"), wifi.Rate12BPSK))

	require.Equal(t, len(full.Samples), len(scaled.Samples))
	for i := range full.Samples {
		assert.InDelta(t, real(full.Samples[i])*0.5, real(scaled.Samples[i]), 1e-12)
		assert.InDelta(t, imag(full.Samples[i])*0.5, imag(scaled.Samples[i]), 1e-12)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"sample_rate: 10.0e6\nbatch_size: 16384\ntx_amplitude: 0.8\nlisten_addr: \"127.0.0.1:9000\"\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10.0e6, cfg.SampleRate)
	assert.Equal(t, 16384, cfg.BatchSize)
	assert.Equal(t, 0.8, cfg.TxAmplitude)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestFileSourceSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.iq")

	samples := make([]complex128, 1000)
	for i := range samples {
		samples[i] = complex(float64(i)/1000, -float64(i)/2000)
	}

	sink, err := sdr.CreateFileSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.SendBurstSync(samples))
	require.NoError(t, sink.Close())

	source, err := sdr.OpenFileSource(path)
	require.NoError(t, err)
	defer source.Close()

	out := make([]complex128, 1000)
	n, _ := source.GetSamples(1000, out)
	require.Equal(t, 1000, n)
	for i := range samples {
		assert.InDelta(t, real(samples[i]), real(out[i]), 1e-6)
		assert.InDelta(t, imag(samples[i]), imag(out[i]), 1e-6)
	}
}
