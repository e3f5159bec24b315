package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pulse-protocol/pulse-go/pkg/log"
	"github.com/pulse-protocol/pulse-go/pkg/status"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByRole     map[log.Role]int
	EventsByCategory map[log.Category]int
	EventsByKind     map[status.EventKind]int
	Deliveries       map[log.DeliveryMode]int
	DeliveredCount   uint64
	Endpoints        map[string]*EndpointStats
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// EndpointStats holds statistics for a single endpoint.
type EndpointStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Role      log.Role
	Topic     string
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByRole:     make(map[log.Role]int),
		EventsByCategory: make(map[log.Category]int),
		EventsByKind:     make(map[status.EventKind]int),
		Deliveries:       make(map[log.DeliveryMode]int),
		Endpoints:        make(map[string]*EndpointStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByRole[event.Role]++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		ep, ok := stats.Endpoints[event.EntityID]
		if !ok {
			ep = &EndpointStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
				Role:      event.Role,
				Topic:     event.Topic,
			}
			stats.Endpoints[event.EntityID] = ep
		}
		ep.Events++
		if event.Timestamp.After(ep.LastSeen) {
			ep.LastSeen = event.Timestamp
		}

		if event.Status != nil {
			stats.EventsByKind[event.Status.Kind]++
		}
		if event.Delivery != nil {
			stats.Deliveries[event.Delivery.Mode]++
			if event.Delivery.Mode != log.DeliveryBuffered {
				stats.DeliveredCount += event.Delivery.Count
			}
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== PULSE Event Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n",
			stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, c := range []log.Category{log.CategoryStatus, log.CategoryDelivery, log.CategoryState} {
		if n := stats.EventsByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", c, n)
		}
	}
	fmt.Fprintln(w)

	if len(stats.EventsByKind) > 0 {
		fmt.Fprintln(w, "Status Reports by Kind:")
		kinds := make([]status.EventKind, 0, len(stats.EventsByKind))
		for k := range stats.EventsByKind {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, k := range kinds {
			fmt.Fprintf(w, "  %-26s %d\n", k, stats.EventsByKind[k])
		}
		fmt.Fprintln(w)
	}

	if len(stats.Deliveries) > 0 {
		fmt.Fprintln(w, "Deliveries:")
		for _, m := range []log.DeliveryMode{log.DeliveryBuffered, log.DeliveryImmediate, log.DeliveryFlush} {
			if n := stats.Deliveries[m]; n > 0 {
				fmt.Fprintf(w, "  %-10s %d\n", m, n)
			}
		}
		fmt.Fprintf(w, "  events delivered to callbacks: %d\n", stats.DeliveredCount)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Endpoints: %d\n", len(stats.Endpoints))
	ids := make([]string, 0, len(stats.Endpoints))
	for id := range stats.Endpoints {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		ep := stats.Endpoints[id]
		fmt.Fprintf(w, "  %s  %-10s %-20s %d event(s)\n",
			shortenEntityID(id), ep.Role, ep.Topic, ep.Events)
	}
}
