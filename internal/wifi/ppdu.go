package wifi

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/jeongseonghan/ofdm80211/internal/fec"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "wifi"})

const (
	// MaxFrameSize is the largest payload, in bytes, carried in one PPDU.
	MaxFrameSize = 2000

	// DataPerSymbol is the number of data subcarriers in one OFDM symbol.
	DataPerSymbol = 48

	serviceBytes = 2
	tailBits     = 6
)

// PPDU is one PHY protocol data unit: the SIGNAL header parameters plus the
// payload. Encode produces the frequency-domain data subcarrier stream
// (48 samples per symbol, header symbol first); DecodeHeader and DecodeData
// run the inverse paths on received, equalized samples.
type PPDU struct {
	Params  RateParams
	Length  int    // payload length in bytes
	NumSyms int    // DATA symbols following the SIGNAL symbol
	Service uint16 // SERVICE field recovered on decode, transmitted as zero
	Payload []byte
}

// NewPPDU builds a PPDU for a payload at the given rate.
func NewPPDU(payload []byte, rate Rate) *PPDU {
	rp := rate.Params()
	return &PPDU{
		Params:  rp,
		Length:  len(payload),
		NumSyms: NumSymbols(len(payload), rp.DBPS),
		Payload: payload,
	}
}

// Encode returns the modulated header and data subcarrier samples,
// 48*(1+NumSyms) in total.
func (p *PPDU) Encode() []complex128 {
	out := make([]complex128, 0, DataPerSymbol*(1+p.NumSyms))
	out = append(out, p.encodeHeader()...)
	out = append(out, p.encodeData()...)
	return out
}

// encodeHeader codes the 24-bit SIGNAL field into one BPSK symbol. The
// header is never scrambled.
func (p *PPDU) encodeHeader() []complex128 {
	hdr := packHeader(p.Params, p.Length)
	coded := fec.ConvEncode(hdr[:], headerDataBits)
	interleaved := fec.Interleave(coded, 1)
	return Modulate(interleaved, Rate12BPSK)
}

// encodeData scrambles, codes, punctures, interleaves and modulates
// SERVICE || payload || CRC-32, padded out to whole symbols.
func (p *PPDU) encodeData() []complex128 {
	rp := p.Params
	numDataBits := p.NumSyms * rp.DBPS

	body := make([]byte, serviceBytes, serviceBytes+len(p.Payload))
	body = append(body, p.Payload...)

	// Rounded up: dbps is not always a multiple of 8, and the encoder
	// reads whole bytes.
	data := make([]byte, (numDataBits+7)/8)
	copy(data, fec.AppendCRC32(body))

	scrambled := fec.Scramble(data, fec.ScramblerSeed)
	clearTail(scrambled, 16+8*(p.Length+4), numDataBits)

	coded := fec.ConvEncode(scrambled, numDataBits-tailBits)
	punctured := fec.Puncture(coded, rp.Coding)
	interleaved := fec.Interleave(punctured, rp.BPSC)
	return Modulate(interleaved, rp.Rate)
}

// clearTail zeroes the six tail bits and the pad bits after them, bits
// start..end-1, so the convolutional encoder always terminates in state
// zero, which the decoder's chainback assumes.
func clearTail(data []byte, start, end int) {
	for i := start; i < end; i++ {
		data[i/8] &^= 0x80 >> (i % 8)
	}
}

// DecodeHeader decodes one 48-sample SIGNAL symbol. ok is false when the
// parity check fails or the rate code is invalid.
func DecodeHeader(samples []complex128) (*PPDU, bool) {
	demod := Demodulate(samples, Rate12BPSK)
	deinterleaved := fec.Deinterleave(demod, 1)
	decoded := fec.ConvDecode(deinterleaved, headerDataBits)

	rp, length, ok := parseHeader([3]byte{decoded[0], decoded[1], decoded[2]})
	if !ok {
		return nil, false
	}
	return &PPDU{
		Params:  rp,
		Length:  length,
		NumSyms: NumSymbols(length, rp.DBPS),
	}, true
}

// DecodeData decodes the accumulated DATA samples of the frame and returns
// the payload when the CRC-32 matches. A mismatch drops the frame with one
// warning line.
func (p *PPDU) DecodeData(samples []complex128) ([]byte, bool) {
	rp := p.Params
	numDataBits := p.NumSyms * rp.DBPS

	demod := Demodulate(samples, rp.Rate)
	deinterleaved := fec.Deinterleave(demod, rp.BPSC)
	depunctured := fec.Depuncture(deinterleaved, rp.Coding)
	decoded := fec.ConvDecode(depunctured, numDataBits-tailBits)
	descrambled := fec.Scramble(decoded, fec.ScramblerSeed)

	if len(descrambled) < serviceBytes+p.Length+4 {
		return nil, false
	}
	body, ok := fec.VerifyCRC32(descrambled[:serviceBytes+p.Length+4])
	if !ok {
		logger.Warn("Invalid CRC", "length", p.Length)
		return nil, false
	}

	p.Service = uint16(body[0]) | uint16(body[1])<<8
	p.Payload = body[serviceBytes:]
	return p.Payload, true
}
