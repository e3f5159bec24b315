package log

import (
	"context"
	"log/slog"

	"github.com/pulse-protocol/pulse-go/pkg/status"
)

// SlogAdapter writes diagnostic events to an slog.Logger.
// Useful for development when you want to see middleware events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("entity_id", event.EntityID),
		slog.String("role", event.Role.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Topic != "" {
		attrs = append(attrs, slog.String("topic", event.Topic))
	}

	// Add type-specific attributes
	switch {
	case event.Status != nil:
		attrs = append(attrs, slog.String("kind", event.Status.Kind.String()))
		switch event.Status.Kind {
		case status.LivelinessChanged:
			attrs = append(attrs,
				slog.Int("alive_count", int(event.Status.AliveCount)),
				slog.Int("not_alive_count", int(event.Status.NotAliveCount)),
				slog.Int("alive_count_change", int(event.Status.AliveCountChange)),
				slog.Int("not_alive_count_change", int(event.Status.NotAliveCountChange)),
			)
		default:
			attrs = append(attrs,
				slog.Int("total_count", int(event.Status.TotalCount)),
				slog.Int("total_count_change", int(event.Status.TotalCountChange)),
			)
		}
	case event.Delivery != nil:
		attrs = append(attrs,
			slog.String("mode", event.Delivery.Mode.String()),
			slog.Uint64("count", event.Delivery.Count),
		)
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "pulse", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
