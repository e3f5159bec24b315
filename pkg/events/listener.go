package events

import (
	"sync"
	"time"

	"github.com/pulse-protocol/pulse-go/pkg/log"
	"github.com/pulse-protocol/pulse-go/pkg/status"
	"github.com/pulse-protocol/pulse-go/pkg/waitset"
)

// DeliveryCallback is invoked synchronously on the ingesting goroutine
// when a status event is delivered. userData is the opaque context
// registered alongside the callback; count is the number of events the
// invocation accounts for (1 for live deliveries, the backlog size for
// a flush on registration).
//
// The callback runs with no listener lock held and may call back into
// the listener. It must not block; it runs on the transport's ingest
// path.
type DeliveryCallback func(userData any, count uint64)

// Listener is the consumer-facing surface shared by both endpoint
// roles. A listener aggregates status reports for the event kinds its
// role supports.
type Listener interface {
	// SupportsEvent reports whether the listener aggregates the kind.
	// Callers must check it before ingesting or taking a kind.
	SupportsEvent(kind status.EventKind) bool

	// HasEvent reports whether the kind has an unconsumed report. It is
	// a lock-free hint: re-validate with TakeEvent before acting on it.
	// Unsupported kinds return false.
	HasEvent(kind status.EventKind) bool

	// TakeEvent copies the kind's accumulator into out, zeroes its
	// delta fields and clears its pending flag. out must point to the
	// kind's record shape. Unsupported kinds return false without
	// side effects.
	TakeEvent(kind status.EventKind, out any) bool

	// SetDeliveryCallback installs cb as the delivery callback,
	// flushing any buffered backlog to it exactly once. A nil cb
	// reverts the listener to buffering mode.
	SetDeliveryCallback(userData any, cb DeliveryCallback)

	// AttachCondition registers the condition signaled on every ingest.
	// At most one condition is attached at a time.
	AttachCondition(c *waitset.Condition)

	// DetachCondition removes the attached condition, if any.
	DetachCondition()
}

// eventNotifier owns the wakeup and delivery state shared by the
// subscriber and publisher listeners: the attached wait condition, the
// callback registration with its unread-event count, and the optional
// diagnostics logger.
type eventNotifier struct {
	// condMu guards cond. On the ingest path it is acquired while the
	// listener's data lock is held; the fixed order is data lock first.
	condMu sync.Mutex
	cond   *waitset.Condition

	// cbMu guards the callback registration and unread count. It is
	// independent of the data lock and is never held across a callback
	// invocation.
	cbMu     sync.Mutex
	userData any
	callback DeliveryCallback
	unread   uint64

	logger   log.Logger
	entityID string
	role     log.Role
	topic    string
}

// AttachCondition registers the condition signaled on every ingest.
func (n *eventNotifier) AttachCondition(c *waitset.Condition) {
	n.condMu.Lock()
	n.cond = c
	n.condMu.Unlock()
}

// DetachCondition removes the attached condition, if any.
func (n *eventNotifier) DetachCondition() {
	n.condMu.Lock()
	n.cond = nil
	n.condMu.Unlock()
}

// wake signals the attached condition. Called with the data lock held
// so a consumer sampling readiness observes the update before it can
// block.
func (n *eventNotifier) wake() {
	n.condMu.Lock()
	if n.cond != nil {
		n.cond.Signal()
	}
	n.condMu.Unlock()
}

// SetDeliveryCallback installs cb as the delivery callback. If events
// were buffered while no callback was registered, the new callback is
// invoked once with the accumulated count before live delivery starts.
// A nil cb clears the registration; subsequent events are buffered
// again.
func (n *eventNotifier) SetDeliveryCallback(userData any, cb DeliveryCallback) {
	n.cbMu.Lock()

	if cb == nil {
		n.userData = nil
		n.callback = nil
		n.cbMu.Unlock()
		return
	}

	backlog := n.unread
	n.unread = 0
	n.userData = userData
	n.callback = cb
	logger, event := n.deliveryEventLocked(log.DeliveryFlush, backlog)
	n.cbMu.Unlock()

	// The flush runs with no lock held: the callback may re-enter the
	// listener.
	if backlog > 0 {
		cb(userData, backlog)
		if logger != nil {
			logger.Log(event)
		}
	}
}

// notifyOne delivers a single ingested event: it invokes the
// registered callback with count 1, or increments the unread count
// when no callback is registered. Called after the data lock has been
// released.
func (n *eventNotifier) notifyOne() {
	n.cbMu.Lock()
	cb := n.callback
	userData := n.userData
	if cb == nil {
		n.unread++
		logger, event := n.deliveryEventLocked(log.DeliveryBuffered, n.unread)
		n.cbMu.Unlock()
		if logger != nil {
			logger.Log(event)
		}
		return
	}
	logger, event := n.deliveryEventLocked(log.DeliveryImmediate, 1)
	n.cbMu.Unlock()

	cb(userData, 1)
	if logger != nil {
		logger.Log(event)
	}
}

// UnreadCount returns the number of events buffered while no callback
// was registered.
func (n *eventNotifier) UnreadCount() uint64 {
	n.cbMu.Lock()
	defer n.cbMu.Unlock()
	return n.unread
}

// SetLogger sets the diagnostics logger and the endpoint identity
// attached to logged events. Pass nil to disable logging.
func (n *eventNotifier) SetLogger(logger log.Logger, entityID string, role log.Role, topic string) {
	n.cbMu.Lock()
	n.logger = logger
	n.entityID = entityID
	n.role = role
	n.topic = topic
	n.cbMu.Unlock()
}

// deliveryEventLocked builds a delivery log event. Callers must hold cbMu.
func (n *eventNotifier) deliveryEventLocked(mode log.DeliveryMode, count uint64) (log.Logger, log.Event) {
	if n.logger == nil {
		return nil, log.Event{}
	}
	return n.logger, log.Event{
		Timestamp: time.Now(),
		EntityID:  n.entityID,
		Role:      n.role,
		Topic:     n.topic,
		Category:  log.CategoryDelivery,
		Delivery:  &log.DeliveryEvent{Mode: mode, Count: count},
	}
}

// LogStateChange logs an endpoint lifecycle transition, such as an
// endpoint being deactivated on removal from its manager.
func (n *eventNotifier) LogStateChange(oldState, newState, reason string) {
	n.cbMu.Lock()
	logger := n.logger
	entityID := n.entityID
	role := n.role
	topic := n.topic
	n.cbMu.Unlock()

	if logger == nil {
		return
	}
	logger.Log(log.Event{
		Timestamp: time.Now(),
		EntityID:  entityID,
		Role:      role,
		Topic:     topic,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

// logStatus logs an ingested status report. Called after all listener
// locks have been released.
func (n *eventNotifier) logStatus(st log.StatusEvent) {
	n.cbMu.Lock()
	logger := n.logger
	entityID := n.entityID
	role := n.role
	topic := n.topic
	n.cbMu.Unlock()

	if logger == nil {
		return
	}
	logger.Log(log.Event{
		Timestamp: time.Now(),
		EntityID:  entityID,
		Role:      role,
		Topic:     topic,
		Category:  log.CategoryStatus,
		Status:    &st,
	})
}
