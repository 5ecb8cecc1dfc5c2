package rx

import (
	"math"
	"math/cmplx"
)

// Ring accumulators keep a running sum over the most recent size samples
// with O(1) updates; once full, each add overwrites the oldest sample.
// Non-finite samples are treated as zero so a single bad sample from the
// hardware cannot poison the running sum.

type complexAccumulator struct {
	sum     complex128
	samples []complex128
	index   int
}

func newComplexAccumulator(size int) *complexAccumulator {
	return &complexAccumulator{samples: make([]complex128, size)}
}

func (a *complexAccumulator) add(sample complex128) {
	if cmplx.IsNaN(sample) || cmplx.IsInf(sample) {
		sample = 0
	}
	a.sum -= a.samples[a.index]
	a.sum += sample
	a.samples[a.index] = sample
	a.index++
	if a.index >= len(a.samples) {
		a.index = 0
	}
}

type realAccumulator struct {
	sum     float64
	samples []float64
	index   int
}

func newRealAccumulator(size int) *realAccumulator {
	return &realAccumulator{samples: make([]float64, size)}
}

func (a *realAccumulator) add(sample float64) {
	if math.IsNaN(sample) || math.IsInf(sample, 0) {
		sample = 0
	}
	a.sum -= a.samples[a.index]
	a.sum += sample
	a.samples[a.index] = sample
	a.index++
	if a.index >= len(a.samples) {
		a.index = 0
	}
}
