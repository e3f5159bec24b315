package events

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pulse-protocol/pulse-go/pkg/status"
)

func ingestOne(l *SubscriberListener) {
	l.OnRequestedDeadlineMissed(status.RequestedDeadlineMissedStatus{TotalCountChange: 1})
}

func TestDeliveryBuffersWithoutCallback(t *testing.T) {
	l := NewSubscriberListener()

	for i := 0; i < 3; i++ {
		ingestOne(l)
	}

	if got := l.UnreadCount(); got != 3 {
		t.Errorf("UnreadCount = %d, want 3", got)
	}
}

func TestDeliveryBacklogFlushOnRegistration(t *testing.T) {
	l := NewSubscriberListener()

	for i := 0; i < 5; i++ {
		ingestOne(l)
	}

	var calls []uint64
	var gotUserData any
	l.SetDeliveryCallback("ctx", func(userData any, count uint64) {
		gotUserData = userData
		calls = append(calls, count)
	})

	// Backlog delivered exactly once with the accumulated count
	if len(calls) != 1 || calls[0] != 5 {
		t.Fatalf("flush calls = %v, want [5]", calls)
	}
	if gotUserData != "ctx" {
		t.Errorf("userData = %v, want ctx", gotUserData)
	}
	if got := l.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount after flush = %d, want 0", got)
	}
}

func TestDeliveryNoFlushWithoutBacklog(t *testing.T) {
	l := NewSubscriberListener()

	called := false
	l.SetDeliveryCallback(nil, func(any, uint64) { called = true })

	if called {
		t.Error("callback invoked on registration with empty backlog")
	}
}

func TestDeliveryImmediateWhileRegistered(t *testing.T) {
	l := NewSubscriberListener()

	var calls []uint64
	l.SetDeliveryCallback(nil, func(_ any, count uint64) {
		calls = append(calls, count)
	})

	for i := 0; i < 4; i++ {
		ingestOne(l)
	}

	// One invocation per ingest, count 1 each, no batching
	if len(calls) != 4 {
		t.Fatalf("callback invoked %d times, want 4", len(calls))
	}
	for i, c := range calls {
		if c != 1 {
			t.Errorf("call %d count = %d, want 1", i, c)
		}
	}
	if got := l.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount while delivering = %d, want 0", got)
	}
}

func TestDeliveryNilCallbackRevertsToBuffering(t *testing.T) {
	l := NewSubscriberListener()

	var delivered atomic.Uint64
	l.SetDeliveryCallback(nil, func(_ any, count uint64) {
		delivered.Add(count)
	})
	ingestOne(l)

	l.SetDeliveryCallback(nil, nil)
	ingestOne(l)
	ingestOne(l)

	if got := delivered.Load(); got != 1 {
		t.Errorf("delivered = %d, want 1 (events after unregister must buffer)", got)
	}
	if got := l.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount after unregister = %d, want 2", got)
	}

	// Re-registering flushes the new backlog
	l.SetDeliveryCallback(nil, func(_ any, count uint64) {
		delivered.Add(count)
	})
	if got := delivered.Load(); got != 3 {
		t.Errorf("delivered after re-register = %d, want 3", got)
	}
}

func TestDeliveryCallbackSwap(t *testing.T) {
	l := NewSubscriberListener()

	var first, second atomic.Uint64
	l.SetDeliveryCallback(nil, func(_ any, count uint64) { first.Add(count) })
	ingestOne(l)
	l.SetDeliveryCallback(nil, func(_ any, count uint64) { second.Add(count) })
	ingestOne(l)

	if got := first.Load(); got != 1 {
		t.Errorf("first callback delivered %d, want 1", got)
	}
	if got := second.Load(); got != 1 {
		t.Errorf("second callback delivered %d, want 1", got)
	}
}

// The callback runs with no listener lock held, so it may re-enter the
// listener (e.g. take the event it was just notified about).
func TestDeliveryCallbackMayReenterListener(t *testing.T) {
	l := NewSubscriberListener()

	var taken atomic.Int64
	l.SetDeliveryCallback(nil, func(any, uint64) {
		var st status.RequestedDeadlineMissedStatus
		if l.TakeEvent(status.RequestedDeadlineMissed, &st) {
			taken.Add(int64(st.TotalCountChange))
		}
	})

	ingestOne(l)
	ingestOne(l)

	if got := taken.Load(); got != 2 {
		t.Errorf("re-entrant takes drained %d, want 2", got)
	}
}

// Every ingested event is accounted for exactly once across buffered
// flushes and immediate deliveries, under concurrent registration.
func TestDeliveryCountConservedUnderConcurrentRegistration(t *testing.T) {
	const writers = 4
	const reportsPerWriter = 200

	l := NewSubscriberListener()

	var delivered atomic.Uint64
	cb := func(_ any, count uint64) { delivered.Add(count) }

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < reportsPerWriter; i++ {
				ingestOne(l)
			}
		}()
	}

	// Register while writers are running: the flush and the immediate
	// deliveries must still account for every event exactly once.
	l.SetDeliveryCallback(nil, cb)
	wg.Wait()

	total := delivered.Load() + l.UnreadCount()
	if total != writers*reportsPerWriter {
		t.Errorf("delivered+unread = %d, want %d", total, writers*reportsPerWriter)
	}
	if got := l.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount = %d, want 0 while a callback is registered", got)
	}
}
