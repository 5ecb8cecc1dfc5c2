package wifi

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func allRates() []Rate {
	rates := make([]Rate, NumRates)
	for i := range rates {
		rates[i] = Rate(i)
	}
	return rates
}

func TestRateTable(t *testing.T) {
	for _, rate := range allRates() {
		rp := rate.Params()
		assert.Equal(t, rate, rp.Rate)
		assert.Equal(t, 48*rp.BPSC, rp.CBPS, rp.Name)
		assert.Zero(t, rp.DBPS%2, rp.Name)

		got, ok := FromRateField(rp.RateField)
		require.True(t, ok)
		assert.Equal(t, rp, got)
	}

	_, ok := FromRateField(0x0)
	assert.False(t, ok)
	_, ok = FromRateField(0x2)
	assert.False(t, ok)
}

func TestNumSymbols(t *testing.T) {
	// 802.11a 17.3.5.2: ceil((16 + 8*(length+4) + 6) / DBPS)
	assert.Equal(t, 6, NumSymbols(11, 24))     // 142 bits over BPSK 1/2
	assert.Equal(t, 3, NumSymbols(0, 24))      // empty payload still carries SERVICE, CRC, tail
	assert.Equal(t, 84, NumSymbols(1500, 144)) // the 3/4 QAM16 bulk case
}

func TestHeaderRoundTrip(t *testing.T) {
	for _, rate := range allRates() {
		for _, length := range []int{1, 11, 100, 1500, 4095} {
			rp := rate.Params()
			got, gotLen, ok := parseHeader(packHeader(rp, length))
			require.True(t, ok, "%s length %d", rp.Name, length)
			assert.Equal(t, rp.Rate, got.Rate)
			assert.Equal(t, length, gotLen)
		}
	}
}

func TestHeaderParityRejectsBitFlips(t *testing.T) {
	hdr := packHeader(Rate34QAM16.Params(), 1500)
	for bit := 0; bit < headerDataBits; bit++ {
		flipped := hdr
		flipped[bit/8] ^= 0x80 >> (bit % 8)
		_, _, ok := parseHeader(flipped)
		assert.False(t, ok, "bit %d", bit)
	}
}

func TestModulateDemodulateHardDecisions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, rate := range allRates() {
		rp := rate.Params()
		bits := make([]byte, rp.CBPS*4)
		for i := range bits {
			bits[i] = byte(rng.Intn(2))
		}

		samples := Modulate(bits, rate)
		require.Len(t, samples, len(bits)/rp.BPSC, rp.Name)

		soft := Demodulate(samples, rate)
		require.Len(t, soft, len(bits), rp.Name)
		for i, s := range soft {
			hard := byte(0)
			if s > 127 {
				hard = 1
			}
			require.Equal(t, bits[i], hard, "%s bit %d (soft %d)", rp.Name, i, s)
		}
	}
}

func TestModulateUnitPower(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, rate := range allRates() {
		rp := rate.Params()
		bits := make([]byte, rp.CBPS*32)
		for i := range bits {
			bits[i] = byte(rng.Intn(2))
		}

		samples := Modulate(bits, rate)
		var power float64
		for _, s := range samples {
			power += real(s)*real(s) + imag(s)*imag(s)
		}
		power /= float64(len(samples))
		assert.InDelta(t, 1.0, power, 0.1, rp.Name)
	}
}

func TestPPDUEncodeSampleCount(t *testing.T) {
	for _, rate := range allRates() {
		p := NewPPDU(make([]byte, 100), rate)
		samples := p.Encode()
		assert.Len(t, samples, DataPerSymbol*(1+p.NumSyms), rate.String())
	}
}

func TestPPDURoundTripAllRates(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, rate := range allRates() {
		payload := make([]byte, 300)
		rng.Read(payload)

		p := NewPPDU(payload, rate)
		samples := p.Encode()

		header, ok := DecodeHeader(samples[:DataPerSymbol])
		require.True(t, ok, rate.String())
		assert.Equal(t, rate, header.Params.Rate)
		assert.Equal(t, len(payload), header.Length)
		assert.Equal(t, p.NumSyms, header.NumSyms)

		got, ok := header.DecodeData(samples[DataPerSymbol:])
		require.True(t, ok, rate.String())
		assert.True(t, bytes.Equal(payload, got), rate.String())
		assert.Zero(t, header.Service)
	}
}

func TestPPDURoundTripPayloadSizes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rate := Rate(rapid.IntRange(0, NumRates-1).Draw(t, "rate"))
		payload := rapid.SliceOfN(rapid.Byte(), 1, 1500).Draw(t, "payload")

		p := NewPPDU(payload, rate)
		samples := p.Encode()

		header, ok := DecodeHeader(samples[:DataPerSymbol])
		if !ok {
			t.Fatalf("header decode failed for %s", rate)
		}
		got, ok := header.DecodeData(samples[DataPerSymbol:])
		if !ok || !bytes.Equal(payload, got) {
			t.Fatalf("payload mismatch for %s length %d", rate, len(payload))
		}
	})
}

func TestDecodeDataRejectsCorruption(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog")
	p := NewPPDU(payload, Rate23QPSK)
	samples := p.Encode()

	// Wreck a stretch of data samples well past what the decoder can
	// correct.
	for i := DataPerSymbol; i < DataPerSymbol+200 && i < len(samples); i++ {
		samples[i] = -samples[i] + complex(0.5, -0.5)
	}

	header, ok := DecodeHeader(samples[:DataPerSymbol])
	require.True(t, ok)
	_, ok = header.DecodeData(samples[DataPerSymbol:])
	assert.False(t, ok)
}
