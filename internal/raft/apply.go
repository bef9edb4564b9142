package raft

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"raftlog/internal/metrics"
)

// applier drains committed entries into the state machine on its own
// goroutine so a slow Apply never stalls consensus. Entries arrive strictly
// in index order from the event loop.
type applier struct {
	sm      StateMachine
	queue   chan Entry
	applied atomic.Uint64

	mu      sync.Mutex
	waiters []applyWaiter

	stopCh chan struct{}
	doneWg sync.WaitGroup
}

type applyWaiter struct {
	index uint64
	ch    chan struct{}
}

func newApplier(sm StateMachine, queueSize int) *applier {
	return &applier{
		sm:     sm,
		queue:  make(chan Entry, queueSize),
		stopCh: make(chan struct{}),
	}
}

func (a *applier) start() {
	a.doneWg.Add(1)
	go func() {
		defer a.doneWg.Done()
		a.run()
	}()
}

func (a *applier) stop() {
	close(a.stopCh)
	a.doneWg.Wait()
}

// submit may block when the queue is full; the event loop tolerates this as
// backpressure against an overwhelmed state machine.
func (a *applier) submit(entry Entry) {
	select {
	case a.queue <- entry:
	case <-a.stopCh:
	}
}

func (a *applier) run() {
	for {
		select {
		case <-a.stopCh:
			return
		case entry := <-a.queue:
			a.apply(entry)
		}
	}
}

func (a *applier) apply(entry Entry) {
	start := time.Now()
	if err := a.sm.Apply(entry.Index, entry.Command); err != nil {
		// The state machine contract makes Apply total; an error here is a
		// programming bug, not a recoverable condition.
		slog.Error("state machine apply failed",
			"index", entry.Index,
			"error", err,
		)
	}
	metrics.ApplyDuration.Observe(time.Since(start).Seconds())
	metrics.AppliedEntriesTotal.Inc()

	a.applied.Store(entry.Index)
	a.notify(entry.Index)
}

func (a *applier) lastApplied() uint64 {
	return a.applied.Load()
}

func (a *applier) notify(index uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	kept := a.waiters[:0]
	for _, w := range a.waiters {
		if w.index <= index {
			close(w.ch)
		} else {
			kept = append(kept, w)
		}
	}
	a.waiters = kept
}

// waitUntilApplied blocks until the apply loop has passed index or ctx ends.
func (a *applier) waitUntilApplied(ctx context.Context, index uint64) error {
	if a.applied.Load() >= index {
		return nil
	}

	ch := make(chan struct{})
	a.mu.Lock()
	// Recheck under the lock so a concurrent notify cannot slip between the
	// fast path and registration.
	if a.applied.Load() >= index {
		a.mu.Unlock()
		return nil
	}
	a.waiters = append(a.waiters, applyWaiter{index: index, ch: ch})
	a.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-a.stopCh:
		return ErrShuttingDown
	}
}
