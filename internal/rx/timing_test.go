package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeongseonghan/ofdm80211/internal/ofdm"
)

// runDetectorAndTiming pushes one batch through the first two stages and
// returns the timing sync output. The timing stage delays the stream by its
// carryover window, so output index x holds stream sample x-160.
func runDetectorAndTiming(stream []complex128) []Sample {
	d := NewFrameDetector()
	d.in = stream
	d.Work()

	ts := NewTimingSync()
	ts.in = d.out
	ts.Work()
	return ts.out
}

func TestTimingSyncTagsLTSWithinTolerance(t *testing.T) {
	starts := []int{1000, 6000, 11000}
	stream := noisy(16384, 1e-8, 11)
	for _, s := range starts {
		copy(stream[s:], ofdm.Preamble[:])
	}

	out := runDetectorAndTiming(stream)

	var lts1, lts2 []int
	for x, s := range out {
		switch s.Tag {
		case TagLTS1:
			lts1 = append(lts1, x-carryoverLength)
		case TagLTS2:
			lts2 = append(lts2, x-carryoverLength)
		}
	}

	require.Len(t, lts1, len(starts))
	require.Len(t, lts2, len(starts))
	for i, s := range starts {
		trueLTS1 := s + 10*ofdm.STSLength + 2*ofdm.CPLength // after STS and the LTS prefix
		assert.Greater(t, lts1[i], trueLTS1-ofdm.CPLength)
		assert.LessOrEqual(t, lts1[i], trueLTS1)
		assert.Equal(t, lts1[i]+ofdm.LTSLength, lts2[i])
	}
}

func TestTimingSyncDropsFalseTrigger(t *testing.T) {
	// An STS with no LTS after it must produce no timing tags.
	stream := make([]complex128, 8192)
	insertSTS(stream, 1000, 1)

	out := runDetectorAndTiming(stream)
	for x, s := range out {
		assert.NotEqual(t, TagLTS1, s.Tag, "sample %d", x)
		assert.NotEqual(t, TagLTS2, s.Tag, "sample %d", x)
	}
}

func TestTimingSyncZeroCFOKeepsSamples(t *testing.T) {
	// With no frequency offset the phase accumulator stays at zero and
	// samples pass through unrotated.
	stream := make([]complex128, 4096)
	copy(stream[500:], ofdm.Preamble[:])

	out := runDetectorAndTiming(stream)
	for x := carryoverLength; x < len(out); x++ {
		assert.Equal(t, stream[x-carryoverLength], out[x].Sample, "sample %d", x)
	}
}
