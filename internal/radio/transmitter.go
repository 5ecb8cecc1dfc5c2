package radio

import (
	"fmt"

	"github.com/jeongseonghan/ofdm80211/internal/ofdm"
	"github.com/jeongseonghan/ofdm80211/internal/sdr"
	"github.com/jeongseonghan/ofdm80211/internal/wifi"
)

// Transmitter builds PPDU bursts and hands them to a sample sink.
type Transmitter struct {
	sink    sdr.Sink
	builder *ofdm.FrameBuilder
	amp     float64
}

// NewTransmitter creates a transmitter writing to sink.
func NewTransmitter(sink sdr.Sink, cfg Config) *Transmitter {
	return &Transmitter{
		sink:    sink,
		builder: ofdm.NewFrameBuilder(),
		amp:     cfg.TxAmplitude,
	}
}

// Send encodes payload at the given rate and transmits it as one burst,
// blocking until the sink has accepted it.
func (t *Transmitter) Send(payload []byte, rate wifi.Rate) error {
	if len(payload) == 0 {
		return fmt.Errorf("send: empty payload")
	}
	if len(payload) > wifi.MaxFrameSize {
		return fmt.Errorf("send: payload of %d bytes exceeds the %d byte frame limit", len(payload), wifi.MaxFrameSize)
	}

	samples := t.builder.BuildFrame(payload, rate)
	if t.amp != 1.0 {
		scale := complex(t.amp, 0)
		for i := range samples {
			samples[i] *= scale
		}
	}
	return t.sink.SendBurstSync(samples)
}
