package rx

import (
	"github.com/jeongseonghan/ofdm80211/internal/ofdm"
	"github.com/jeongseonghan/ofdm80211/internal/wifi"
)

// FrameDecoder turns the stream of 48-sample data symbols into payloads.
// On a START_OF_FRAME it decodes the SIGNAL header; when the parity and
// rate checks pass it accumulates the announced number of data symbols,
// then demodulates, deinterleaves, depunctures, Viterbi-decodes,
// descrambles and CRC-checks them. Only payloads with a valid CRC are
// emitted; every failure is local and silent beyond one log line.
type FrameDecoder struct {
	in  []DataSymbol
	out [][]byte

	frame frameInProgress
}

// frameInProgress carries the state of the frame currently being collected.
// sampleCount is zero whenever no frame is in progress.
type frameInProgress struct {
	ppdu        *wifi.PPDU
	sampleCount int
	copied      int
	samples     []complex128
}

func (f *frameInProgress) reset(ppdu *wifi.PPDU, sampleCount int) {
	f.ppdu = ppdu
	f.sampleCount = sampleCount
	f.copied = 0
	f.samples = grow(f.samples, sampleCount)
}

// NewFrameDecoder creates a frame decoding stage.
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{}
}

// Name implements Block.
func (d *FrameDecoder) Name() string { return "frame_decoder" }

// Work implements Block.
func (d *FrameDecoder) Work() {
	d.out = d.out[:0]
	if len(d.in) == 0 {
		return
	}

	for i := range d.in {
		sym := &d.in[i]

		// Collect data symbols for the frame in progress.
		if d.frame.copied < d.frame.sampleCount {
			copy(d.frame.samples[d.frame.copied:], sym.Samples[:])
			d.frame.copied += ofdm.DataSubcarriers
		}

		// Frame complete: decode, emit on valid CRC, reset either way.
		if d.frame.sampleCount != 0 && d.frame.copied >= d.frame.sampleCount {
			if payload, ok := d.frame.ppdu.DecodeData(d.frame.samples); ok {
				d.out = append(d.out, payload)
				framesDecoded.Inc()
			} else {
				crcFailures.Inc()
			}
			d.frame.sampleCount = 0
		}

		if sym.Tag != TagStartOfFrame {
			continue
		}

		ppdu, ok := wifi.DecodeHeader(sym.Samples[:])
		if !ok {
			headerDrops.Inc()
			logger.Debug("dropping frame with invalid header")
			continue
		}
		d.frame.reset(ppdu, ppdu.NumSyms*ofdm.DataSubcarriers)
	}
}
