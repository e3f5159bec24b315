package waitset

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Wait errors.
var (
	ErrWaitTimeout  = errors.New("wait timed out with no waitable ready")
	ErrEmptyWaitSet = errors.New("wait set has no attached waitables")
)

// Waitable is anything a WaitSet can block on. Event handles implement
// it by delegating to their listener.
type Waitable interface {
	// AttachCondition registers the condition to be signaled when the
	// waitable becomes ready. At most one condition is attached at a
	// time; attaching replaces a previous attachment.
	AttachCondition(c *Condition)

	// DetachCondition removes the attached condition, if any.
	DetachCondition()

	// Ready reports whether the waitable has a pending event. It must
	// be cheap; implementations use a lock-free flag.
	Ready() bool
}

// WaitSet blocks a single consumer on a set of waitables.
type WaitSet struct {
	mu        sync.Mutex
	cond      *Condition
	waitables []Waitable
}

// New creates an empty WaitSet.
func New() *WaitSet {
	return &WaitSet{cond: NewCondition()}
}

// Attach adds a waitable to the set. Attaching during an active Wait is
// not supported.
func (ws *WaitSet) Attach(w Waitable) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.waitables = append(ws.waitables, w)
}

// Detach removes a previously attached waitable. It is a no-op if the
// waitable is not in the set.
func (ws *WaitSet) Detach(w Waitable) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for i, attached := range ws.waitables {
		if attached == w {
			ws.waitables = append(ws.waitables[:i], ws.waitables[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached waitables.
func (ws *WaitSet) Len() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.waitables)
}

// Wait blocks until at least one waitable is ready, the timeout
// elapses, or ctx is done. It returns the ready subset.
//
// A zero timeout checks once without blocking. A negative timeout waits
// without bound. On timeout Wait returns ErrWaitTimeout; on context
// cancellation it returns the context error.
func (ws *WaitSet) Wait(ctx context.Context, timeout time.Duration) ([]Waitable, error) {
	ws.mu.Lock()
	waitables := make([]Waitable, len(ws.waitables))
	copy(waitables, ws.waitables)
	cond := ws.cond
	ws.mu.Unlock()

	if len(waitables) == 0 {
		return nil, ErrEmptyWaitSet
	}

	// Attach before the first readiness check: an event raised between
	// check and block then latches a wakeup instead of being missed.
	cond.Clear()
	for _, w := range waitables {
		w.AttachCondition(cond)
	}
	defer func() {
		for _, w := range waitables {
			w.DetachCondition()
		}
	}()

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		if ready := collectReady(waitables); len(ready) > 0 {
			return ready, nil
		}

		remaining := timeout
		if timeout > 0 {
			remaining = time.Until(deadline)
			if remaining <= 0 {
				return nil, ErrWaitTimeout
			}
		}

		if !cond.Wait(ctx, remaining) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			// Timed out; one final check so an event that raced the
			// timer is still reported.
			if ready := collectReady(waitables); len(ready) > 0 {
				return ready, nil
			}
			return nil, ErrWaitTimeout
		}
	}
}

func collectReady(waitables []Waitable) []Waitable {
	var ready []Waitable
	for _, w := range waitables {
		if w.Ready() {
			ready = append(ready, w)
		}
	}
	return ready
}
