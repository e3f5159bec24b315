package events

import (
	"sync"
	"sync/atomic"

	"github.com/pulse-protocol/pulse-go/pkg/log"
	"github.com/pulse-protocol/pulse-go/pkg/status"
)

// PublisherListener aggregates the publisher-side status events:
// OfferedDeadlineMissed and LivelinessLost. It follows the same
// aggregation and delivery protocol as SubscriberListener.
//
// A PublisherListener must not be copied after first use.
type PublisherListener struct {
	mu sync.Mutex

	deadline   status.OfferedDeadlineMissedStatus
	liveliness status.LivelinessLostStatus

	deadlinePending   atomic.Bool
	livelinessPending atomic.Bool

	eventNotifier
}

// NewPublisherListener creates a listener with empty accumulators, no
// attached condition and no registered callback.
func NewPublisherListener() *PublisherListener {
	return &PublisherListener{}
}

// SupportsEvent reports whether kind is a publisher-side event kind.
func (l *PublisherListener) SupportsEvent(kind status.EventKind) bool {
	return kind == status.OfferedDeadlineMissed || kind == status.LivelinessLost
}

// OnOfferedDeadlineMissed ingests a deadline-missed report from the
// transport.
func (l *PublisherListener) OnOfferedDeadlineMissed(st status.OfferedDeadlineMissedStatus) {
	l.mu.Lock()
	l.deadline.TotalCount = st.TotalCount
	l.deadline.TotalCountChange += st.TotalCountChange
	l.deadlinePending.Store(true)
	l.wake()
	l.mu.Unlock()

	l.notifyOne()
	l.logStatus(log.StatusEvent{
		Kind:             status.OfferedDeadlineMissed,
		TotalCount:       st.TotalCount,
		TotalCountChange: st.TotalCountChange,
	})
}

// OnLivelinessLost ingests a liveliness-lost report from the transport.
func (l *PublisherListener) OnLivelinessLost(st status.LivelinessLostStatus) {
	l.mu.Lock()
	l.liveliness.TotalCount = st.TotalCount
	l.liveliness.TotalCountChange += st.TotalCountChange
	l.livelinessPending.Store(true)
	l.wake()
	l.mu.Unlock()

	l.notifyOne()
	l.logStatus(log.StatusEvent{
		Kind:             status.LivelinessLost,
		TotalCount:       st.TotalCount,
		TotalCountChange: st.TotalCountChange,
	})
}

// HasEvent reports whether kind has an unconsumed report.
// Unsupported kinds return false.
func (l *PublisherListener) HasEvent(kind status.EventKind) bool {
	switch kind {
	case status.OfferedDeadlineMissed:
		return l.deadlinePending.Load()
	case status.LivelinessLost:
		return l.livelinessPending.Load()
	}
	return false
}

// TakeEvent copies the kind's accumulator into out, zeroes the delta
// fields and clears the pending flag. out must be a
// *status.OfferedDeadlineMissedStatus or *status.LivelinessLostStatus
// matching kind. Unsupported kinds return false without side effects.
func (l *PublisherListener) TakeEvent(kind status.EventKind, out any) bool {
	switch kind {
	case status.OfferedDeadlineMissed:
		dst := out.(*status.OfferedDeadlineMissedStatus)
		l.mu.Lock()
		*dst = l.deadline
		l.deadline.TotalCountChange = 0
		l.deadlinePending.Store(false)
		l.mu.Unlock()
	case status.LivelinessLost:
		dst := out.(*status.LivelinessLostStatus)
		l.mu.Lock()
		*dst = l.liveliness
		l.liveliness.TotalCountChange = 0
		l.livelinessPending.Store(false)
		l.mu.Unlock()
	default:
		return false
	}
	return true
}

// Compile-time interface satisfaction check.
var _ Listener = (*PublisherListener)(nil)
