package ofdm

import "math"

// Preamble structure of one PPDU: ten repetitions of the 16-sample short
// training sequence, then a 32-sample cyclic prefix followed by two
// 64-sample long training symbols. Both sequences are defined in the
// frequency domain (802.11a section 17.3.3) and generated at init through
// the same inverse transform the transmitter uses, so the receiver's
// correlation references match the transmitted waveform exactly.

const (
	STSLength = 16 // period of the short training sequence
	LTSLength = 64 // one long training symbol

	CPLength     = 16 // cyclic prefix of SIGNAL and DATA symbols
	SymbolLength = CPLength + FFTSize

	PreambleLength = 10*STSLength + 2*CPLength + 2*LTSLength
)

// LTSFrequency is the long training symbol in centered order: +/-1 on the
// 52 active subcarriers, zero elsewhere.
var LTSFrequency [FFTSize]complex128

// LTSTime is one time-domain long training symbol.
var LTSTime [LTSLength]complex128

// STSTime is one 16-sample period of the short training sequence.
var STSTime [STSLength]complex128

// Preamble is the complete 320-sample preamble.
var Preamble [PreambleLength]complex128

var ltsSeq = [52]float64{
	// subcarriers -26..-1
	1, 1, -1, -1, 1, 1, -1, 1, -1, 1, 1, 1, 1, 1, 1, -1,
	-1, 1, 1, -1, 1, -1, 1, 1, 1, 1,
	// subcarriers 1..26
	1, -1, -1, 1, 1, -1, 1, -1, 1, -1, -1, -1, -1, -1, 1, 1,
	-1, -1, 1, -1, 1, -1, 1, 1, 1, 1,
}

// stsSeq holds the sign of (1+j) on every active short-training subcarrier,
// keyed by subcarrier number; the sequence occupies multiples of 4.
var stsSeq = map[int]float64{
	-24: 1, -20: -1, -16: 1, -12: -1, -8: -1, -4: 1,
	4: -1, 8: -1, 12: 1, 16: 1, 20: 1, 24: 1,
}

func init() {
	n := 0
	for k := -26; k <= 26; k++ {
		if k == 0 {
			continue
		}
		LTSFrequency[k+FFTSize/2] = complex(ltsSeq[n], 0)
		n++
	}

	var stsFreq [FFTSize]complex128
	scale := math.Sqrt(13.0 / 6.0)
	for k, sign := range stsSeq {
		stsFreq[k+FFTSize/2] = complex(sign*scale, sign*scale)
	}

	fft := NewFFT()

	lts := make([]complex128, FFTSize)
	copy(lts, LTSFrequency[:])
	fft.Inverse(lts)
	copy(LTSTime[:], lts)

	sts := make([]complex128, FFTSize)
	copy(sts, stsFreq[:])
	fft.Inverse(sts)
	copy(STSTime[:], sts[:STSLength])

	p := 0
	for rep := 0; rep < 10; rep++ {
		p += copy(Preamble[p:], STSTime[:])
	}
	p += copy(Preamble[p:], LTSTime[2*CPLength:]) // 32-sample LTS cyclic prefix
	p += copy(Preamble[p:], LTSTime[:])
	copy(Preamble[p:], LTSTime[:])
}
