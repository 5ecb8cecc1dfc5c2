package rx

import "math/cmplx"

// Frame detection parameters. The short training sequence repeats every 16
// samples, so a delayed auto-correlation over a 16-sample window plateaus
// near 1 for its whole duration.
const (
	stsLength        = 16
	plateauThreshold = 0.9
	stsPlateauLength = 16
)

// FrameDetector finds the short training sequence with a normalized
// 16-sample delayed auto-correlation and tags the plateau edges as
// STS_START and STS_END. Samples pass through unchanged.
type FrameDetector struct {
	in  []complex128
	out []Sample

	corr  *complexAccumulator
	power *realAccumulator

	plateauLength int
	plateau       bool
	carryover     [stsLength]complex128
}

// NewFrameDetector creates a frame detector.
func NewFrameDetector() *FrameDetector {
	return &FrameDetector{
		corr:  newComplexAccumulator(stsLength),
		power: newRealAccumulator(stsLength),
	}
}

// Name implements Block.
func (d *FrameDetector) Name() string { return "frame_detector" }

// Work implements Block.
func (d *FrameDetector) Work() {
	d.out = d.out[:0]
	if len(d.in) == 0 {
		return
	}
	d.out = grow(d.out, len(d.in))

	for x, s := range d.in {
		var delayed complex128
		if x < stsLength {
			delayed = d.carryover[x]
		} else {
			delayed = d.in[x-stsLength]
		}

		d.corr.add(s * cmplx.Conj(delayed))
		d.power.add(real(s)*real(s) + imag(s)*imag(s))
		corr := cmplx.Abs(d.corr.sum) / d.power.sum

		tag := TagNone
		if corr > plateauThreshold {
			d.plateauLength++
			if d.plateauLength == stsPlateauLength {
				tag = TagSTSStart
				d.plateau = true
			}
		} else {
			if d.plateau {
				tag = TagSTSEnd
				d.plateau = false
			}
			d.plateauLength = 0
		}

		d.out[x] = Sample{Sample: s, Tag: tag}
	}

	// The last 16 input samples seed next batch's delayed window.
	if n := len(d.in); n >= stsLength {
		copy(d.carryover[:], d.in[n-stsLength:])
	} else {
		copy(d.carryover[:], d.carryover[n:])
		copy(d.carryover[stsLength-n:], d.in)
	}
}
