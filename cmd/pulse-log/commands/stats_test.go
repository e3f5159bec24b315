package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pulse-protocol/pulse-go/pkg/log"
	"github.com/pulse-protocol/pulse-go/pkg/status"
)

func TestStatsCountsByCategory(t *testing.T) {
	ts := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, EntityID: "sub-1", Category: log.CategoryStatus,
			Status: &log.StatusEvent{Kind: status.RequestedDeadlineMissed, TotalCount: 1, TotalCountChange: 1}},
		{Timestamp: ts, EntityID: "sub-1", Category: log.CategoryStatus,
			Status: &log.StatusEvent{Kind: status.LivelinessChanged, AliveCount: 2}},
		{Timestamp: ts, EntityID: "sub-1", Category: log.CategoryDelivery,
			Delivery: &log.DeliveryEvent{Mode: log.DeliveryImmediate, Count: 1}},
	}
	path := createTestLogFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Total Events: 3") {
		t.Errorf("expected total of 3 events, got: %s", output)
	}
	if !strings.Contains(output, "status") || !strings.Contains(output, "delivery") {
		t.Errorf("expected category breakdown, got: %s", output)
	}
	if !strings.Contains(output, "REQUESTED_DEADLINE_MISSED") {
		t.Errorf("expected kind breakdown, got: %s", output)
	}
}

func TestStatsTracksEndpoints(t *testing.T) {
	ts := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, EntityID: "subscriber-guid-1", Role: log.RoleSubscriber, Topic: "robot/odom"},
		{Timestamp: ts.Add(time.Second), EntityID: "subscriber-guid-1", Role: log.RoleSubscriber, Topic: "robot/odom"},
		{Timestamp: ts, EntityID: "publisher-guid-1", Role: log.RolePublisher, Topic: "robot/cmd"},
	}
	path := createTestLogFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Endpoints: 2") {
		t.Errorf("expected 2 endpoints, got: %s", output)
	}
	if !strings.Contains(output, "robot/odom") || !strings.Contains(output, "robot/cmd") {
		t.Errorf("expected per-endpoint topics, got: %s", output)
	}
}

func TestStatsSumsDeliveredCounts(t *testing.T) {
	ts := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		// Buffered events count unread totals, not deliveries
		{Timestamp: ts, EntityID: "sub-1", Category: log.CategoryDelivery,
			Delivery: &log.DeliveryEvent{Mode: log.DeliveryBuffered, Count: 3}},
		{Timestamp: ts, EntityID: "sub-1", Category: log.CategoryDelivery,
			Delivery: &log.DeliveryEvent{Mode: log.DeliveryFlush, Count: 3}},
		{Timestamp: ts, EntityID: "sub-1", Category: log.CategoryDelivery,
			Delivery: &log.DeliveryEvent{Mode: log.DeliveryImmediate, Count: 1}},
	}
	path := createTestLogFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "events delivered to callbacks: 4") {
		t.Errorf("expected delivered sum of 4, got: %s", output)
	}
}

func TestStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed on empty file: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("expected zero total, got: %s", buf.String())
	}
}
