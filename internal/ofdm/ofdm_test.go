package ofdm

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeongseonghan/ofdm80211/internal/wifi"
)

func randomSymbols(n int, seed int64) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return out
}

func TestFFTRoundTrip(t *testing.T) {
	data := randomSymbols(FFTSize*3, 1)
	orig := append([]complex128{}, data...)

	fft := NewFFT()
	fft.Inverse(data)
	for x := 0; x < len(data); x += FFTSize {
		fft.Forward(data[x : x+FFTSize])
	}

	for i := range data {
		assert.InDelta(t, real(orig[i]), real(data[i]), 1e-9)
		assert.InDelta(t, imag(orig[i]), imag(data[i]), 1e-9)
	}
}

func TestFFTCenteredOrder(t *testing.T) {
	// A pure tone on subcarrier k is exp(2*pi*i*k*n/64) in time; after
	// Forward it must land at centered index k+32.
	for _, k := range []int{1, -7, 21, -26} {
		sym := make([]complex128, FFTSize)
		for n := range sym {
			sym[n] = cmplx.Exp(complex(0, 2*math.Pi*float64(k)*float64(n)/FFTSize))
		}

		NewFFT().Forward(sym)
		for i, v := range sym {
			want := 0.0
			if i == k+FFTSize/2 {
				want = FFTSize
			}
			assert.InDelta(t, want, cmplx.Abs(v), 1e-9, "tone %d index %d", k, i)
		}
	}
}

func TestMapDemapInverse(t *testing.T) {
	data := randomSymbols(DataSubcarriers*3, 2)
	mapped := Map(data)
	require.Len(t, mapped, FFTSize*3)

	got := Demap(mapped)
	assert.Equal(t, data, got)
}

func TestMapPilotsAndNulls(t *testing.T) {
	mapped := Map(randomSymbols(DataSubcarriers*2, 3))

	// DC and guard bands are null on every symbol.
	for sym := 0; sym < 2; sym++ {
		base := sym * FFTSize
		assert.Zero(t, mapped[base+32])
		for _, i := range []int{0, 1, 2, 3, 4, 5, 59, 60, 61, 62, 63} {
			assert.Zero(t, mapped[base+i])
		}
		for n, idx := range PilotIndices {
			want := PilotValues[n] * complex(Polarity[sym], 0)
			assert.Equal(t, want, mapped[base+idx], "symbol %d pilot %d", sym, n)
		}
	}
}

func TestPolarityPeriod(t *testing.T) {
	assert.Len(t, Polarity[:], 127)
	// Symbol 127 reuses the polarity of symbol 0.
	assert.Equal(t, Polarity[0], Polarity[127%len(Polarity)])
}

func TestPreambleStructure(t *testing.T) {
	require.Len(t, Preamble[:], 320)

	// The short training sequence repeats every 16 samples for 160.
	for i := 0; i < 144; i++ {
		assert.Equal(t, Preamble[i], Preamble[i+STSLength], "sts sample %d", i)
	}

	// Two identical long training symbols preceded by their 32-sample
	// cyclic prefix.
	for i := 0; i < LTSLength; i++ {
		assert.Equal(t, Preamble[192+i], Preamble[256+i], "lts sample %d", i)
	}
	for i := 0; i < 32; i++ {
		assert.Equal(t, LTSTime[32+i], Preamble[160+i], "lts cp sample %d", i)
	}
}

func TestLTSFrequencyActiveSubcarriers(t *testing.T) {
	active := 0
	for i, v := range LTSFrequency {
		switch {
		case i >= 6 && i <= 58 && i != 32:
			assert.Contains(t, []complex128{1, -1}, v, "index %d", i)
			active++
		default:
			assert.Zero(t, v, "index %d", i)
		}
	}
	assert.Equal(t, 52, active)
}

func TestBuildFrameLength(t *testing.T) {
	fb := NewFrameBuilder()
	for _, rate := range []wifi.Rate{wifi.Rate12BPSK, wifi.Rate34QAM16, wifi.Rate34QAM64} {
		payload := make([]byte, 200)
		frame := fb.BuildFrame(payload, rate)

		numSyms := wifi.NumSymbols(len(payload), rate.Params().DBPS)
		assert.Len(t, frame, PreambleLength+(1+numSyms)*SymbolLength, rate.String())
	}
}

func TestBuildFrameCyclicPrefixes(t *testing.T) {
	frame := NewFrameBuilder().BuildFrame([]byte("Hello World"), wifi.Rate12BPSK)

	// Every SIGNAL/DATA symbol's first 16 samples repeat its last 16.
	for sym := PreambleLength; sym+SymbolLength <= len(frame); sym += SymbolLength {
		for i := 0; i < CPLength; i++ {
			assert.Equal(t, frame[sym+CPLength+FFTSize-CPLength+i], frame[sym+i],
				"symbol at %d sample %d", sym, i)
		}
	}
}
