package rx

import (
	"sync"
	"time"
)

// Chain is the receive pipeline: six stages, each on its own goroutine,
// advanced in lock step one batch at a time. Per batch the coordinator
// hands the raw samples to the first stage by buffer swap, wakes every
// stage, waits for all of them, then shifts each stage's output into the
// next stage's input, again by swap. Ownership of every buffer therefore
// moves down the chain without copying, and a sample entering stage i
// during one batch reaches stage i+1 on the next.
type Chain struct {
	detector  *FrameDetector
	timing    *TimingSync
	symbols   *FFTSymbols
	estimator *ChannelEstimator
	tracker   *PhaseTracker
	decoder   *FrameDecoder

	runners []*runner

	halt     chan struct{}
	haltOnce sync.Once

	sampleRate float64
	budget     time.Duration // real-time budget of the batch being processed
}

// NewChain creates the pipeline and starts its stage goroutines.
// sampleRate sets the real-time budget used to flag slow stages; zero
// disables budget accounting.
func NewChain(sampleRate float64) *Chain {
	c := &Chain{
		detector:   NewFrameDetector(),
		timing:     NewTimingSync(),
		symbols:    NewFFTSymbols(),
		estimator:  NewChannelEstimator(),
		tracker:    NewPhaseTracker(),
		decoder:    NewFrameDecoder(),
		halt:       make(chan struct{}),
		sampleRate: sampleRate,
	}

	blocks := []Block{c.detector, c.timing, c.symbols, c.estimator, c.tracker, c.decoder}
	for _, b := range blocks {
		r := newRunner(b)
		c.runners = append(c.runners, r)
		go r.run(c.halt, &c.budget)
	}
	return c
}

// ProcessSamples runs one batch through the pipeline. The chain takes
// ownership of samples; in exchange it returns a retired buffer the caller
// may reuse for the next batch. Payloads decoded during this batch are
// returned in arrival order. Batches should be at least a preamble long
// (several thousand samples is typical).
func (c *Chain) ProcessSamples(samples []complex128) ([][]byte, []complex128) {
	if c.sampleRate > 0 {
		c.budget = time.Duration(float64(len(samples)) / c.sampleRate * float64(time.Second))
	}

	recycled := c.detector.in
	c.detector.in = samples

	for _, r := range c.runners {
		select {
		case <-c.halt:
			return nil, samples
		case r.wake <- struct{}{}:
		}
	}
	for _, r := range c.runners {
		select {
		case <-c.halt:
			return nil, samples
		case <-r.done:
		}
	}

	// Shift each stage's output into the next stage's input.
	c.timing.in, c.detector.out = c.detector.out, c.timing.in
	c.symbols.in, c.timing.out = c.timing.out, c.symbols.in
	c.estimator.in, c.symbols.out = c.symbols.out, c.estimator.in
	c.tracker.in, c.estimator.out = c.estimator.out, c.tracker.in
	c.decoder.in, c.tracker.out = c.tracker.out, c.decoder.in

	payloads := c.decoder.out
	c.decoder.out = nil
	return payloads, recycled
}

// Halt releases every stage goroutine. The chain must not be used after.
func (c *Chain) Halt() {
	c.haltOnce.Do(func() { close(c.halt) })
}
