package rx

import (
	"math/cmplx"

	"github.com/jeongseonghan/ofdm80211/internal/ofdm"
)

// PhaseTracker corrects the residual phase rotation of each symbol using
// the four pilot subcarriers, then drops pilots and nulls so only the 48
// data subcarriers flow downstream. The pilot polarity sequence restarts at
// every START_OF_FRAME with the SIGNAL symbol.
type PhaseTracker struct {
	in  []Symbol
	out []DataSymbol

	symbolCount int
}

// NewPhaseTracker creates a phase tracking stage.
func NewPhaseTracker() *PhaseTracker {
	return &PhaseTracker{}
}

// Name implements Block.
func (p *PhaseTracker) Name() string { return "phase_tracker" }

// Work implements Block.
func (p *PhaseTracker) Work() {
	p.out = p.out[:0]
	if len(p.in) == 0 {
		return
	}
	p.out = grow(p.out, len(p.in))

	for i := range p.in {
		sym := &p.in[i]
		if sym.Tag == TagStartOfFrame {
			p.symbolCount = 0
		}

		// Average the rotation of the four pilots against their references.
		polarity := ofdm.Polarity[p.symbolCount%len(ofdm.Polarity)]
		var phaseError complex128
		for n, idx := range ofdm.PilotIndices {
			ref := ofdm.PilotValues[n] * complex(polarity, 0)
			phaseError += sym.Samples[idx] * cmplx.Conj(ref) / ofdm.PilotCount
		}

		correction := cmplx.Exp(complex(0, -cmplx.Phase(phaseError)))
		for s, idx := range ofdm.DataIndices {
			p.out[i].Samples[s] = sym.Samples[idx] * correction
		}
		p.out[i].Tag = sym.Tag

		p.symbolCount++
	}
}
