package waitset

import (
	"context"
	"sync"
	"time"
)

// Condition is a latched wakeup primitive connecting event producers to
// a blocked consumer. Signal latches a wakeup; Wait consumes it.
//
// The zero value is not usable; create Conditions with NewCondition.
type Condition struct {
	mu sync.Mutex
	ch chan struct{}
}

// NewCondition creates a new Condition with no wakeup latched.
func NewCondition() *Condition {
	return &Condition{ch: make(chan struct{}, 1)}
}

// Signal latches a wakeup, releasing a blocked Wait or causing the next
// Wait to return immediately. Signaling an already-signaled Condition
// is a no-op.
//
// Signal acquires the condition mutex before posting so that a consumer
// sampling readiness at this exact moment observes the wakeup before it
// can block. Producers must already hold their data lock when calling
// Signal; the lock order is data lock first, then this mutex.
func (c *Condition) Signal() {
	c.mu.Lock()
	select {
	case c.ch <- struct{}{}:
	default:
	}
	c.mu.Unlock()
}

// Clear discards a latched wakeup, if any. Callers use it to start a
// fresh wait session without inheriting a stale signal.
func (c *Condition) Clear() {
	select {
	case <-c.ch:
	default:
	}
}

// Wait blocks until a wakeup is latched, the timeout elapses, or ctx is
// done. It returns true if a wakeup was consumed.
//
// A zero timeout polls without blocking. A negative timeout waits
// without bound (until a signal or ctx cancellation).
func (c *Condition) Wait(ctx context.Context, timeout time.Duration) bool {
	if timeout == 0 {
		select {
		case <-c.ch:
			return true
		default:
			return false
		}
	}

	if timeout < 0 {
		select {
		case <-c.ch:
			return true
		case <-ctx.Done():
			return false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-c.ch:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}
