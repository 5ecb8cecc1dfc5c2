package rx

import "github.com/jeongseonghan/ofdm80211/internal/ofdm"

// FFTSymbols assembles the tagged sample stream into 64-sample symbols on
// an 80-sample cycle (16 cyclic prefix samples discarded, 64 collected) and
// transforms each to the frequency domain. The LTS1 tag resets symbol
// framing and marks the next emitted symbol LTS_START; LTS2 re-aligns the
// prefix count at the second training symbol.
type FFTSymbols struct {
	in  []Sample
	out []Symbol

	offset  int
	current Symbol
	fft     *ofdm.FFT
}

// NewFFTSymbols creates a symbol extraction stage.
func NewFFTSymbols() *FFTSymbols {
	return &FFTSymbols{fft: ofdm.NewFFT()}
}

// Name implements Block.
func (f *FFTSymbols) Name() string { return "fft_symbols" }

// Work implements Block.
func (f *FFTSymbols) Work() {
	f.out = f.out[:0]
	if len(f.in) == 0 {
		return
	}

	for _, ts := range f.in {
		if ts.Tag == TagLTS1 {
			// Flush whatever partial symbol was being collected.
			if f.offset > ofdm.CPLength-1 {
				f.out = append(f.out, f.current)
			}
			f.current.Tag = TagLTSStart
			f.offset = ofdm.CPLength
		}
		if ts.Tag == TagLTS2 {
			f.offset = ofdm.CPLength
		}

		if f.offset > ofdm.CPLength-1 {
			f.current.Samples[f.offset-ofdm.CPLength] = ts.Sample
		}

		f.offset++
		if f.offset == ofdm.SymbolLength {
			f.out = append(f.out, f.current)
			f.current.Tag = TagNone
			f.offset = 0
		}
	}

	for i := range f.out {
		f.fft.Forward(f.out[i].Samples[:])
	}
}
