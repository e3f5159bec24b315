package events

import (
	"sync"
	"sync/atomic"

	"github.com/pulse-protocol/pulse-go/pkg/log"
	"github.com/pulse-protocol/pulse-go/pkg/status"
)

// SubscriberListener aggregates the subscriber-side status events:
// RequestedDeadlineMissed and LivelinessChanged. The transport calls
// the On* entry points; the consumer polls with HasEvent/TakeEvent or
// registers a delivery callback.
//
// A SubscriberListener must not be copied after first use.
type SubscriberListener struct {
	// mu is the data lock guarding the accumulators against TakeEvent.
	mu sync.Mutex

	deadline   status.RequestedDeadlineMissedStatus
	liveliness status.LivelinessChangedStatus

	// Pending flags are hints for lock-free polling; correctness
	// decisions always re-read under mu.
	deadlinePending   atomic.Bool
	livelinessPending atomic.Bool

	eventNotifier
}

// NewSubscriberListener creates a listener with empty accumulators, no
// attached condition and no registered callback.
func NewSubscriberListener() *SubscriberListener {
	return &SubscriberListener{}
}

// SupportsEvent reports whether kind is a subscriber-side event kind.
func (l *SubscriberListener) SupportsEvent(kind status.EventKind) bool {
	return kind == status.RequestedDeadlineMissed || kind == status.LivelinessChanged
}

// OnRequestedDeadlineMissed ingests a deadline-missed report from the
// transport. The absolute total is overwritten, the delta is summed,
// and any blocked waiter or registered callback is notified.
func (l *SubscriberListener) OnRequestedDeadlineMissed(st status.RequestedDeadlineMissedStatus) {
	l.mu.Lock()
	// Assign absolute values, accumulate deltas.
	l.deadline.TotalCount = st.TotalCount
	l.deadline.TotalCountChange += st.TotalCountChange
	l.deadlinePending.Store(true)
	l.wake()
	l.mu.Unlock()

	l.notifyOne()
	l.logStatus(log.StatusEvent{
		Kind:             status.RequestedDeadlineMissed,
		TotalCount:       st.TotalCount,
		TotalCountChange: st.TotalCountChange,
	})
}

// OnLivelinessChanged ingests a liveliness report from the transport.
func (l *SubscriberListener) OnLivelinessChanged(st status.LivelinessChangedStatus) {
	l.mu.Lock()
	l.liveliness.AliveCount = st.AliveCount
	l.liveliness.NotAliveCount = st.NotAliveCount
	l.liveliness.AliveCountChange += st.AliveCountChange
	l.liveliness.NotAliveCountChange += st.NotAliveCountChange
	l.livelinessPending.Store(true)
	l.wake()
	l.mu.Unlock()

	l.notifyOne()
	l.logStatus(log.StatusEvent{
		Kind:                status.LivelinessChanged,
		AliveCount:          st.AliveCount,
		NotAliveCount:       st.NotAliveCount,
		AliveCountChange:    st.AliveCountChange,
		NotAliveCountChange: st.NotAliveCountChange,
	})
}

// HasEvent reports whether kind has an unconsumed report.
// Unsupported kinds return false.
func (l *SubscriberListener) HasEvent(kind status.EventKind) bool {
	switch kind {
	case status.RequestedDeadlineMissed:
		return l.deadlinePending.Load()
	case status.LivelinessChanged:
		return l.livelinessPending.Load()
	}
	return false
}

// TakeEvent copies the kind's accumulator into out, zeroes the delta
// fields and clears the pending flag. Absolute fields keep their last
// transport-reported value. out must be a *status.RequestedDeadlineMissedStatus
// or *status.LivelinessChangedStatus matching kind. Unsupported kinds
// return false without side effects.
func (l *SubscriberListener) TakeEvent(kind status.EventKind, out any) bool {
	switch kind {
	case status.RequestedDeadlineMissed:
		dst := out.(*status.RequestedDeadlineMissedStatus)
		l.mu.Lock()
		*dst = l.deadline
		l.deadline.TotalCountChange = 0
		l.deadlinePending.Store(false)
		l.mu.Unlock()
	case status.LivelinessChanged:
		dst := out.(*status.LivelinessChangedStatus)
		l.mu.Lock()
		*dst = l.liveliness
		l.liveliness.AliveCountChange = 0
		l.liveliness.NotAliveCountChange = 0
		l.livelinessPending.Store(false)
		l.mu.Unlock()
	default:
		return false
	}
	return true
}

// Compile-time interface satisfaction check.
var _ Listener = (*SubscriberListener)(nil)
