package waitset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeWaitable is a test waitable with an externally controlled
// readiness flag.
type fakeWaitable struct {
	ready atomic.Bool

	mu   sync.Mutex
	cond *Condition
}

func (f *fakeWaitable) AttachCondition(c *Condition) {
	f.mu.Lock()
	f.cond = c
	f.mu.Unlock()
}

func (f *fakeWaitable) DetachCondition() {
	f.mu.Lock()
	f.cond = nil
	f.mu.Unlock()
}

func (f *fakeWaitable) Ready() bool {
	return f.ready.Load()
}

func (f *fakeWaitable) trigger() {
	f.ready.Store(true)
	f.mu.Lock()
	if f.cond != nil {
		f.cond.Signal()
	}
	f.mu.Unlock()
}

func TestWaitSetEmpty(t *testing.T) {
	ws := New()

	_, err := ws.Wait(context.Background(), 0)
	if !errors.Is(err, ErrEmptyWaitSet) {
		t.Errorf("Wait error = %v, want ErrEmptyWaitSet", err)
	}
}

func TestWaitSetAlreadyReady(t *testing.T) {
	ws := New()
	w := &fakeWaitable{}
	w.ready.Store(true)
	ws.Attach(w)

	ready, err := ws.Wait(context.Background(), 0)
	if err != nil {
		t.Fatalf("Wait error = %v", err)
	}
	if len(ready) != 1 {
		t.Fatalf("len(ready) = %d, want 1", len(ready))
	}
}

func TestWaitSetTimeout(t *testing.T) {
	ws := New()
	ws.Attach(&fakeWaitable{})

	start := time.Now()
	_, err := ws.Wait(context.Background(), 30*time.Millisecond)
	if !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("Wait error = %v, want ErrWaitTimeout", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Wait returned after %v, want >= 30ms", elapsed)
	}
}

func TestWaitSetWakesOnTrigger(t *testing.T) {
	ws := New()
	w := &fakeWaitable{}
	ws.Attach(w)

	go func() {
		time.Sleep(15 * time.Millisecond)
		w.trigger()
	}()

	ready, err := ws.Wait(context.Background(), 2*time.Second)
	if err != nil {
		t.Fatalf("Wait error = %v", err)
	}
	if len(ready) != 1 || ready[0] != Waitable(w) {
		t.Fatalf("ready = %v, want the triggered waitable", ready)
	}
}

func TestWaitSetReturnsOnlyReadySubset(t *testing.T) {
	ws := New()
	a := &fakeWaitable{}
	b := &fakeWaitable{}
	c := &fakeWaitable{}
	ws.Attach(a)
	ws.Attach(b)
	ws.Attach(c)

	b.trigger()

	ready, err := ws.Wait(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Wait error = %v", err)
	}
	if len(ready) != 1 || ready[0] != Waitable(b) {
		t.Fatalf("ready = %v, want only b", ready)
	}
}

func TestWaitSetDetachesAfterWait(t *testing.T) {
	ws := New()
	w := &fakeWaitable{}
	ws.Attach(w)

	_, _ = ws.Wait(context.Background(), 0)

	w.mu.Lock()
	attached := w.cond != nil
	w.mu.Unlock()
	if attached {
		t.Error("condition still attached after Wait returned")
	}
}

func TestWaitSetContextCancellation(t *testing.T) {
	ws := New()
	ws.Attach(&fakeWaitable{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := ws.Wait(ctx, -1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wait error = %v, want context.Canceled", err)
	}
}

func TestWaitSetDetachRemovesWaitable(t *testing.T) {
	ws := New()
	a := &fakeWaitable{}
	b := &fakeWaitable{}
	ws.Attach(a)
	ws.Attach(b)

	ws.Detach(a)
	if ws.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ws.Len())
	}

	a.ready.Store(true)
	_, err := ws.Wait(context.Background(), 0)
	if !errors.Is(err, ErrWaitTimeout) {
		t.Errorf("Wait saw a detached waitable: err = %v", err)
	}
}

// A trigger landing between the readiness check and the block must be
// observed before the consumer sleeps the full timeout.
func TestWaitSetNoMissedWakeup(t *testing.T) {
	ws := New()
	w := &fakeWaitable{}
	ws.Attach(w)

	for i := 0; i < 100; i++ {
		w.ready.Store(false)
		go w.trigger()

		start := time.Now()
		ready, err := ws.Wait(context.Background(), 5*time.Second)
		if err != nil {
			t.Fatalf("iteration %d: Wait error = %v", i, err)
		}
		if len(ready) == 0 {
			t.Fatalf("iteration %d: no ready waitable", i)
		}
		if time.Since(start) > time.Second {
			t.Fatalf("iteration %d: wakeup took too long, likely missed", i)
		}
	}
}
