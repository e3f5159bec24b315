package events

import (
	"errors"
	"fmt"

	"github.com/pulse-protocol/pulse-go/pkg/status"
	"github.com/pulse-protocol/pulse-go/pkg/waitset"
)

// ErrUnsupportedKind is returned when an event handle is created for a
// kind the listener does not aggregate.
var ErrUnsupportedKind = errors.New("event kind not supported by listener")

// Event is a handle binding a listener to one of its event kinds. It is
// the unit a WaitSet blocks on: Ready reflects the kind's pending flag
// and Take drains its accumulator.
type Event struct {
	listener Listener
	kind     status.EventKind
}

// NewEvent creates an event handle for kind on the listener. It returns
// ErrUnsupportedKind if the listener's role does not aggregate kind.
func NewEvent(l Listener, kind status.EventKind) (*Event, error) {
	if !l.SupportsEvent(kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	return &Event{listener: l, kind: kind}, nil
}

// Kind returns the event kind the handle is bound to.
func (e *Event) Kind() status.EventKind {
	return e.kind
}

// Ready reports whether the kind has an unconsumed report.
func (e *Event) Ready() bool {
	return e.listener.HasEvent(e.kind)
}

// Take drains the kind's accumulator into out. out must point to the
// kind's record shape.
func (e *Event) Take(out any) bool {
	return e.listener.TakeEvent(e.kind, out)
}

// AttachCondition registers the condition on the underlying listener.
// Handles sharing a listener share its single condition slot; attach
// them to the same WaitSet.
func (e *Event) AttachCondition(c *waitset.Condition) {
	e.listener.AttachCondition(c)
}

// DetachCondition removes the condition from the underlying listener.
func (e *Event) DetachCondition() {
	e.listener.DetachCondition()
}

// Compile-time interface satisfaction check.
var _ waitset.Waitable = (*Event)(nil)
