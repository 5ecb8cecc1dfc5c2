package rx

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/jeongseonghan/ofdm80211/internal/ofdm"
)

const (
	// carryoverLength covers the longest correlation window that can hang
	// over a batch boundary: the LTS search space after an STS_END.
	carryoverLength  = 160
	ltsCorrThreshold = 0.9
)

// TimingSync refines frame timing to sample accuracy by cross-correlating
// against the known long training symbol, and compensates the coarse
// carrier frequency offset measured between the two LTS symbols. The LTS1
// framing point is placed 8 samples early so downstream symbol extraction
// lands inside each cyclic prefix, tolerating small timing jitter.
type TimingSync struct {
	in  []Sample
	out []Sample

	phaseOffset float64 // per-sample phase increment
	phaseAcc    float64 // accumulated rotation, kept within (-2pi, 2pi]

	carryover []Sample
	combined  []Sample
	ltsConj   [ofdm.LTSLength]complex128
}

// NewTimingSync creates a timing sync stage.
func NewTimingSync() *TimingSync {
	t := &TimingSync{carryover: make([]Sample, carryoverLength)}
	for i, s := range ofdm.LTSTime {
		t.ltsConj[i] = cmplx.Conj(s)
	}
	return t
}

// Name implements Block.
func (t *TimingSync) Name() string { return "timing_sync" }

// Work implements Block. The stage delays the stream by one carryover
// window so every correlation fits entirely inside the working buffer.
func (t *TimingSync) Work() {
	t.out = t.out[:0]
	if len(t.in) == 0 {
		return
	}
	n := len(t.in)

	t.combined = grow(t.combined, n+carryoverLength)
	copy(t.combined, t.carryover)
	copy(t.combined[carryoverLength:], t.in)

	for x := 0; x < n; x++ {
		if t.combined[x].Tag == TagSTSEnd {
			t.locateLTS(x)
		}

		t.phaseAcc += t.phaseOffset
		for t.phaseAcc > 2*math.Pi {
			t.phaseAcc -= 2 * math.Pi
		}
		for t.phaseAcc < -2*math.Pi {
			t.phaseAcc += 2 * math.Pi
		}
		t.combined[x].Sample *= cmplx.Exp(complex(0, t.phaseAcc))
	}

	t.out = grow(t.out, n)
	copy(t.out, t.combined[:n])
	copy(t.carryover, t.combined[n:])
}

type ltsPeak struct {
	corr float64
	pos  int
}

// locateLTS searches the window after an STS_END for two LTS correlation
// peaks exactly one symbol apart. With no such pair the false trigger is
// dropped by emitting no tags.
func (t *TimingSync) locateLTS(x int) {
	var peaks []ltsPeak
	for p := x; p <= x+carryoverLength-ofdm.LTSLength; p++ {
		var corr complex128
		var power float64
		for s := 0; s < ofdm.LTSLength; s++ {
			v := t.combined[p+s].Sample
			corr += v * t.ltsConj[s]
			power += real(v)*real(v) + imag(v)*imag(v)
		}
		if c := cmplx.Abs(corr) / power; c > ltsCorrThreshold {
			peaks = append(peaks, ltsPeak{corr: c, pos: p})
		}
	}

	sort.Slice(peaks, func(i, j int) bool { return peaks[i].corr > peaks[j].corr })
	limit := len(peaks)
	if limit > 5 {
		limit = 5
	}

	for s := 0; s < limit; s++ {
		for u := s + 1; u < limit; u++ {
			d := peaks[s].pos - peaks[u].pos
			if d != ofdm.LTSLength && d != -ofdm.LTSLength {
				continue
			}

			first := peaks[s].pos
			if peaks[u].pos < first {
				first = peaks[u].pos
			}
			ltsOffset := first - 2*ofdm.CPLength // start of the LTS cyclic prefix
			if ltsOffset < 0 {
				return
			}

			t.combined[ltsOffset+24].Tag = TagLTS1
			t.combined[ltsOffset+24+ofdm.LTSLength].Tag = TagLTS2

			// Coarse CFO from the repetition of the two LTS symbols.
			lts1 := ltsOffset + 2*ofdm.CPLength
			var acc complex128
			for k := 0; k < ofdm.LTSLength; k++ {
				acc += t.combined[lts1+k].Sample * cmplx.Conj(t.combined[lts1+ofdm.LTSLength+k].Sample)
			}
			t.phaseOffset = cmplx.Phase(acc) / float64(ofdm.LTSLength)
			t.phaseAcc = 0
			return
		}
	}
}
