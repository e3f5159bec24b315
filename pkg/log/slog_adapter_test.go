package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pulse-protocol/pulse-go/pkg/status"
)

func TestSlogAdapterStatusEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	a := NewSlogAdapter(logger)
	a.Log(Event{
		Timestamp: time.Now(),
		EntityID:  "guid-1",
		Role:      RoleSubscriber,
		Topic:     "sensor/temperature",
		Category:  CategoryStatus,
		Status: &StatusEvent{
			Kind:       status.RequestedDeadlineMissed,
			TotalCount: 4, TotalCountChange: 2,
		},
	})

	out := buf.String()
	for _, want := range []string{"guid-1", "subscriber", "status", "sensor/temperature", "REQUESTED_DEADLINE_MISSED", "total_count=4", "total_count_change=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("slog output missing %q: %s", want, out)
		}
	}
}

func TestSlogAdapterDeliveryEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	a := NewSlogAdapter(logger)
	a.Log(Event{
		Timestamp: time.Now(),
		EntityID:  "guid-2",
		Role:      RolePublisher,
		Category:  CategoryDelivery,
		Delivery:  &DeliveryEvent{Mode: DeliveryFlush, Count: 5},
	})

	out := buf.String()
	for _, want := range []string{"publisher", "delivery", "flush", "count=5"} {
		if !strings.Contains(out, want) {
			t.Errorf("slog output missing %q: %s", want, out)
		}
	}
}
