package ofdm

import "gonum.org/v1/gonum/dsp/fourier"

// FFTSize is the transform length; 802.11a always uses 64 subcarriers.
const FFTSize = 64

// FFT wraps a 64-point complex transform and converts between the natural
// DFT bin order and the centered spectrum layout used everywhere else in
// this package: index i carries subcarrier i-32, so negative frequencies
// occupy 0..31, DC sits at 32 and positive frequencies at 33..63.
type FFT struct {
	fft     *fourier.CmplxFFT
	scratch []complex128
	coeff   []complex128
}

// NewFFT creates a 64-point transform.
func NewFFT() *FFT {
	return &FFT{
		fft:     fourier.NewCmplxFFT(FFTSize),
		scratch: make([]complex128, FFTSize),
		coeff:   make([]complex128, FFTSize),
	}
}

// Forward performs an in-place 64-point DFT of one time-domain symbol,
// leaving the result in centered order.
func (f *FFT) Forward(sym []complex128) {
	copy(f.scratch, sym[:FFTSize])
	f.fft.Coefficients(f.coeff, f.scratch)
	for s := 0; s < FFTSize; s++ {
		sym[s] = f.coeff[(s+FFTSize/2)%FFTSize]
	}
}

// Inverse performs in-place 64-point inverse DFTs over data, which must be
// an integer multiple of 64 samples of centered-order spectra. The output
// is scaled by 1/64.
func (f *FFT) Inverse(data []complex128) {
	for x := 0; x+FFTSize <= len(data); x += FFTSize {
		for k := 0; k < FFTSize; k++ {
			f.scratch[k] = data[x+(k+FFTSize/2)%FFTSize]
		}
		f.fft.Sequence(f.coeff, f.scratch)
		for k := 0; k < FFTSize; k++ {
			data[x+k] = f.coeff[k] / FFTSize
		}
	}
}
