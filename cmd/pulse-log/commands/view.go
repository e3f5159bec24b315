// Package commands implements the pulse-log CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/pulse-protocol/pulse-go/pkg/log"
)

// ParseRoleFlag parses a role name from a CLI flag.
func ParseRoleFlag(s string) (log.Role, error) {
	switch s {
	case "subscriber", "sub":
		return log.RoleSubscriber, nil
	case "publisher", "pub":
		return log.RolePublisher, nil
	default:
		return 0, fmt.Errorf("unknown role %q (expected subscriber or publisher)", s)
	}
}

// ParseCategoryFlag parses a category name from a CLI flag.
func ParseCategoryFlag(s string) (log.Category, error) {
	switch s {
	case "status":
		return log.CategoryStatus, nil
	case "delivery":
		return log.CategoryDelivery, nil
	case "state":
		return log.CategoryState, nil
	default:
		return 0, fmt.Errorf("unknown category %q (expected status, delivery or state)", s)
	}
}

// RunView prints the matching events of a trace file in human-readable
// form.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [entity] ROLE CATEGORY Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [%s] %-10s %-8s %s\n",
		ts, shortenEntityID(event.EntityID), event.Role, event.Category, typeLabel(event))

	if event.Topic != "" {
		fmt.Fprintf(w, "  Topic: %s\n", event.Topic)
	}

	switch {
	case event.Status != nil:
		formatStatusDetails(w, event.Status)
	case event.Delivery != nil:
		formatDeliveryDetails(w, event.Delivery)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	}

	fmt.Fprintln(w) // Blank line between events
}

// typeLabel names the event's payload for the header line.
func typeLabel(event log.Event) string {
	switch {
	case event.Status != nil:
		return event.Status.Kind.String()
	case event.Delivery != nil:
		return event.Delivery.Mode.String()
	case event.StateChange != nil:
		return event.StateChange.NewState
	default:
		return "Unknown"
	}
}

// shortenEntityID returns the first 8 characters of the endpoint GUID.
func shortenEntityID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatStatusDetails writes the populated counter fields of a status
// report.
func formatStatusDetails(w io.Writer, st *log.StatusEvent) {
	if st.TotalCount != 0 || st.TotalCountChange != 0 {
		fmt.Fprintf(w, "  Total: %d (change %+d)\n", st.TotalCount, st.TotalCountChange)
	}
	if st.AliveCount != 0 || st.NotAliveCount != 0 ||
		st.AliveCountChange != 0 || st.NotAliveCountChange != 0 {
		fmt.Fprintf(w, "  Alive: %d (change %+d)  NotAlive: %d (change %+d)\n",
			st.AliveCount, st.AliveCountChange, st.NotAliveCount, st.NotAliveCountChange)
	}
}

func formatDeliveryDetails(w io.Writer, d *log.DeliveryEvent) {
	fmt.Fprintf(w, "  Count: %d\n", d.Count)
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Transition: %s -> %s\n", sc.OldState, sc.NewState)
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}
