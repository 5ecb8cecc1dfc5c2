package rx

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "rx"})

// Block is one stage of the receive chain. A Work call consumes whatever is
// in the stage's input buffer and fills its output buffer; it must be total
// over its input, producing a well-formed (possibly empty) output no matter
// what arrives. Work never performs I/O and never blocks.
type Block interface {
	Name() string
	Work()
}

// runner owns the goroutine of one stage. The coordinator wakes it once per
// batch and waits for its completion; both rendezvous are unbuffered so the
// batch protocol stays in lock step.
type runner struct {
	block Block
	wake  chan struct{}
	done  chan struct{}
}

// grow reslices buf to length n, reallocating only when the capacity is
// insufficient.
func grow[T any](buf []T, n int) []T {
	if cap(buf) >= n {
		return buf[:n]
	}
	return append(buf[:cap(buf)], make([]T, n-cap(buf))...)
}

func newRunner(b Block) *runner {
	return &runner{
		block: b,
		wake:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// run is the stage goroutine: wait for wake, do one unit of work, report
// done, forever. A closed halt channel releases it from either wait.
func (r *runner) run(halt <-chan struct{}, budget *time.Duration) {
	for {
		select {
		case <-halt:
			return
		case <-r.wake:
		}

		start := time.Now()
		r.block.Work()
		if b := *budget; b > 0 {
			if elapsed := time.Since(start); elapsed > b {
				stageOverruns.WithLabelValues(r.block.Name()).Inc()
				logger.Warn("stage exceeded batch budget",
					"stage", r.block.Name(), "elapsed", elapsed, "budget", b)
			}
		}

		select {
		case <-halt:
			return
		case r.done <- struct{}{}:
		}
	}
}
