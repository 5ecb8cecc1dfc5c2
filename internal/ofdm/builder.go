package ofdm

import "github.com/jeongseonghan/ofdm80211/internal/wifi"

// FrameBuilder turns payloads into complete time-domain PPDU bursts ready
// for a sample sink: coded and modulated data subcarriers are mapped onto
// symbols with pilots and nulls, transformed to the time domain, cyclic
// prefixed and prepended with the preamble.
type FrameBuilder struct {
	fft *FFT
}

// NewFrameBuilder creates a frame builder.
func NewFrameBuilder() *FrameBuilder {
	return &FrameBuilder{fft: NewFFT()}
}

// BuildFrame encodes payload at the given rate and returns the baseband
// samples of one PPDU.
func (fb *FrameBuilder) BuildFrame(payload []byte, rate wifi.Rate) []complex128 {
	ppdu := wifi.NewPPDU(payload, rate)

	// SIGNAL and DATA subcarriers, mapped onto full symbols.
	mapped := Map(ppdu.Encode())
	fb.fft.Inverse(mapped)

	numSymbols := len(mapped) / FFTSize
	frame := make([]complex128, PreambleLength+numSymbols*SymbolLength)
	copy(frame, Preamble[:])

	out := frame[PreambleLength:]
	for x := 0; x < numSymbols; x++ {
		body := mapped[x*FFTSize : (x+1)*FFTSize]
		copy(out[x*SymbolLength:], body[FFTSize-CPLength:])
		copy(out[x*SymbolLength+CPLength:], body)
	}
	return frame
}
