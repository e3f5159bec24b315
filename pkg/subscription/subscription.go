package subscription

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/pulse-protocol/pulse-go/pkg/events"
	"github.com/pulse-protocol/pulse-go/pkg/status"
)

// Subscription errors.
var (
	ErrInvalidTopic         = errors.New("invalid topic name")
	ErrResourceExhausted    = errors.New("maximum subscriptions reached")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// Default subscription limits.
const (
	DefaultMaxSubscriptions = 50
	DefaultMaxPerTopic      = 8
)

// Config holds subscription manager configuration.
type Config struct {
	// MaxSubscriptions is the maximum number of subscriptions allowed.
	MaxSubscriptions int

	// MaxPerTopic is the maximum subscriptions per topic.
	MaxPerTopic int
}

// DefaultConfig returns the default subscription configuration.
func DefaultConfig() Config {
	return Config{
		MaxSubscriptions: DefaultMaxSubscriptions,
		MaxPerTopic:      DefaultMaxPerTopic,
	}
}

// Subscription represents a subscriber endpoint on a topic. It owns the
// listener that aggregates the endpoint's status events.
type Subscription struct {
	mu sync.RWMutex

	// ID is the unique subscription identifier.
	ID uint32

	// GUID is the endpoint's globally unique identifier.
	GUID uuid.UUID

	// Topic is the subscribed topic name.
	Topic string

	// listener aggregates status events for this endpoint.
	listener *events.SubscriberListener

	// active indicates if the subscription is active.
	active bool
}

// NewSubscription creates a new active subscription on topic.
func NewSubscription(id uint32, topic string) *Subscription {
	return &Subscription{
		ID:       id,
		GUID:     uuid.New(),
		Topic:    topic,
		listener: events.NewSubscriberListener(),
		active:   true,
	}
}

// Listener returns the subscription's event listener. The transport
// side uses it to ingest status reports; the consumer side uses it to
// register a delivery callback or build event handles for a wait set.
func (s *Subscription) Listener() *events.SubscriberListener {
	return s.listener
}

// IsActive returns whether the subscription is active.
func (s *Subscription) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Deactivate marks the subscription as inactive. The first call logs
// the lifecycle transition to the listener's diagnostics logger.
func (s *Subscription) Deactivate() {
	s.mu.Lock()
	wasActive := s.active
	s.active = false
	s.mu.Unlock()

	if wasActive {
		s.listener.LogStateChange("active", "inactive", "subscription removed")
	}
}

// SupportsEvent reports whether the subscription aggregates kind.
func (s *Subscription) SupportsEvent(kind status.EventKind) bool {
	return s.listener.SupportsEvent(kind)
}

// HasEvent reports whether kind has an unconsumed report.
func (s *Subscription) HasEvent(kind status.EventKind) bool {
	return s.listener.HasEvent(kind)
}

// TakeEvent drains kind's accumulator into out. See
// events.SubscriberListener.TakeEvent.
func (s *Subscription) TakeEvent(kind status.EventKind, out any) bool {
	return s.listener.TakeEvent(kind, out)
}

// idGenerator generates unique subscription IDs.
var idGenerator atomic.Uint32

// nextID returns the next unique subscription ID.
func nextID() uint32 {
	return idGenerator.Add(1)
}
