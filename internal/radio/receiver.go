package radio

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/jeongseonghan/ofdm80211/internal/rx"
	"github.com/jeongseonghan/ofdm80211/internal/sdr"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "radio"})

// Callback receives the payloads decoded from one batch, in arrival order.
// It runs on the receiver's coordinator goroutine, so it must not block for
// long and must do its own locking if it touches shared state.
type Callback func(payloads [][]byte)

// flushBatches is how many all-zero batches are pushed through the chain
// after the source drains, so frames still in flight across the pipeline's
// one-batch-per-stage latency are delivered.
const flushBatches = 6

// Receiver pulls batches from a sample source, drives the receive chain and
// delivers decoded payloads to the callback.
type Receiver struct {
	source sdr.Source
	chain  *rx.Chain
	cb     Callback
	cfg    Config

	mu     sync.Mutex
	cond   *sync.Cond
	paused bool
	halted bool
	done   chan struct{}
}

// NewReceiver creates a receiver. Call Start to begin processing.
func NewReceiver(source sdr.Source, cb Callback, cfg Config) *Receiver {
	r := &Receiver{
		source: source,
		chain:  rx.NewChain(cfg.SampleRate),
		cb:     cb,
		cfg:    cfg,
		done:   make(chan struct{}),
	}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Start launches the receive loop on its own goroutine.
func (r *Receiver) Start() {
	go r.loop()
}

// Pause suspends the loop between batches; in-flight work finishes first.
func (r *Receiver) Pause() {
	r.mu.Lock()
	r.paused = true
	r.mu.Unlock()
}

// Resume continues a paused receiver.
func (r *Receiver) Resume() {
	r.mu.Lock()
	r.paused = false
	r.mu.Unlock()
	r.cond.Broadcast()
}

// Halt stops the loop and releases the chain's goroutines. It blocks until
// the batch in progress has finished.
func (r *Receiver) Halt() {
	r.mu.Lock()
	r.halted = true
	r.mu.Unlock()
	r.cond.Broadcast()
	<-r.done
	r.chain.Halt()
}

// Wait blocks until the receive loop exits on its own (source drained or
// failed).
func (r *Receiver) Wait() {
	<-r.done
}

func (r *Receiver) loop() {
	defer close(r.done)

	buf := make([]complex128, r.cfg.BatchSize)
	for {
		r.mu.Lock()
		for r.paused && !r.halted {
			r.cond.Wait()
		}
		halted := r.halted
		r.mu.Unlock()
		if halted {
			return
		}

		n, err := r.source.GetSamples(r.cfg.BatchSize, buf)
		if n > 0 {
			buf = r.process(buf[:n])
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info("sample source drained")
				r.flush(buf)
			} else {
				logger.Error("sample source failed", "err", err)
			}
			return
		}
	}
}

// process runs one batch and returns a buffer for the next one.
func (r *Receiver) process(batch []complex128) []complex128 {
	payloads, recycled := r.chain.ProcessSamples(batch)
	if len(payloads) > 0 && r.cb != nil {
		r.cb(payloads)
	}
	if cap(recycled) < r.cfg.BatchSize {
		return make([]complex128, r.cfg.BatchSize)
	}
	return recycled[:r.cfg.BatchSize]
}

// flush pushes zero batches through so the last frames clear the pipeline.
func (r *Receiver) flush(buf []complex128) {
	for i := 0; i < flushBatches; i++ {
		for j := range buf {
			buf[j] = 0
		}
		buf = r.process(buf)
	}
}
