package publication

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/pulse-protocol/pulse-go/pkg/events"
	"github.com/pulse-protocol/pulse-go/pkg/status"
)

// Publication errors.
var (
	ErrInvalidTopic        = errors.New("invalid topic name")
	ErrResourceExhausted   = errors.New("maximum publications reached")
	ErrPublicationNotFound = errors.New("publication not found")
)

// DefaultMaxPublications is the default publication limit per manager.
const DefaultMaxPublications = 50

// Publication represents a publisher endpoint on a topic. It owns the
// listener that aggregates the endpoint's status events.
type Publication struct {
	mu sync.RWMutex

	// ID is the unique publication identifier.
	ID uint32

	// GUID is the endpoint's globally unique identifier.
	GUID uuid.UUID

	// Topic is the published topic name.
	Topic string

	// listener aggregates status events for this endpoint.
	listener *events.PublisherListener

	// active indicates if the publication is active.
	active bool
}

// NewPublication creates a new active publication on topic.
func NewPublication(id uint32, topic string) *Publication {
	return &Publication{
		ID:       id,
		GUID:     uuid.New(),
		Topic:    topic,
		listener: events.NewPublisherListener(),
		active:   true,
	}
}

// Listener returns the publication's event listener.
func (p *Publication) Listener() *events.PublisherListener {
	return p.listener
}

// IsActive returns whether the publication is active.
func (p *Publication) IsActive() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}

// Deactivate marks the publication as inactive. The first call logs
// the lifecycle transition to the listener's diagnostics logger.
func (p *Publication) Deactivate() {
	p.mu.Lock()
	wasActive := p.active
	p.active = false
	p.mu.Unlock()

	if wasActive {
		p.listener.LogStateChange("active", "inactive", "publication removed")
	}
}

// SupportsEvent reports whether the publication aggregates kind.
func (p *Publication) SupportsEvent(kind status.EventKind) bool {
	return p.listener.SupportsEvent(kind)
}

// HasEvent reports whether kind has an unconsumed report.
func (p *Publication) HasEvent(kind status.EventKind) bool {
	return p.listener.HasEvent(kind)
}

// TakeEvent drains kind's accumulator into out. See
// events.PublisherListener.TakeEvent.
func (p *Publication) TakeEvent(kind status.EventKind, out any) bool {
	return p.listener.TakeEvent(kind, out)
}

// idGenerator generates unique publication IDs.
var idGenerator atomic.Uint32

// nextID returns the next unique publication ID.
func nextID() uint32 {
	return idGenerator.Add(1)
}
