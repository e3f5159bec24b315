package log

import (
	"testing"
	"time"

	"github.com/pulse-protocol/pulse-go/pkg/status"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{
		Timestamp: time.Now(),
		EntityID:  "test-entity",
		Role:      RoleSubscriber,
		Category:  CategoryStatus,
	}

	// Test with nil payloads
	logger.Log(event)

	// Test with status payload
	event.Status = &StatusEvent{Kind: status.RequestedDeadlineMissed, TotalCount: 1, TotalCountChange: 1}
	logger.Log(event)

	// Test with delivery payload
	event.Status = nil
	event.Delivery = &DeliveryEvent{Mode: DeliveryImmediate, Count: 1}
	logger.Log(event)

	// Test with state change payload
	event.Delivery = nil
	event.StateChange = &StateChangeEvent{OldState: "buffering", NewState: "delivering"}
	logger.Log(event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}

func TestMultiLoggerFansOut(t *testing.T) {
	var first, second []Event
	m := NewMultiLogger(
		loggerFunc(func(e Event) { first = append(first, e) }),
		loggerFunc(func(e Event) { second = append(second, e) }),
	)

	m.Log(Event{EntityID: "a"})
	m.Log(Event{EntityID: "b"})

	if len(first) != 2 || len(second) != 2 {
		t.Errorf("fan-out counts = (%d, %d), want (2, 2)", len(first), len(second))
	}
}

// loggerFunc adapts a function to the Logger interface for tests.
type loggerFunc func(Event)

func (f loggerFunc) Log(e Event) { f(e) }
