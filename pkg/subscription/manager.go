package subscription

import (
	"sync"

	"github.com/pulse-protocol/pulse-go/pkg/status"
)

// Manager manages the subscriber endpoints of one participant.
// The transport collaborator reports status changes through the
// Notify* methods, which fan out to every subscription on the topic.
type Manager struct {
	mu sync.RWMutex

	// Configuration
	config Config

	// Active subscriptions by ID
	subscriptions map[uint32]*Subscription

	// Index by topic for efficient status dispatch
	topicIndex map[string][]*Subscription
}

// NewManager creates a new subscription manager with default configuration.
func NewManager() *Manager {
	return NewManagerWithConfig(DefaultConfig())
}

// NewManagerWithConfig creates a new subscription manager with custom configuration.
func NewManagerWithConfig(config Config) *Manager {
	if config.MaxSubscriptions <= 0 {
		config.MaxSubscriptions = DefaultMaxSubscriptions
	}
	if config.MaxPerTopic <= 0 {
		config.MaxPerTopic = DefaultMaxPerTopic
	}

	return &Manager{
		config:        config,
		subscriptions: make(map[uint32]*Subscription),
		topicIndex:    make(map[string][]*Subscription),
	}
}

// Subscribe creates a new subscription on topic and returns it.
func (m *Manager) Subscribe(topic string) (*Subscription, error) {
	if topic == "" {
		return nil, ErrInvalidTopic
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.subscriptions) >= m.config.MaxSubscriptions {
		return nil, ErrResourceExhausted
	}
	if len(m.topicIndex[topic]) >= m.config.MaxPerTopic {
		return nil, ErrResourceExhausted
	}

	sub := NewSubscription(nextID(), topic)
	m.subscriptions[sub.ID] = sub
	m.topicIndex[topic] = append(m.topicIndex[topic], sub)

	return sub, nil
}

// Unsubscribe deactivates and removes a subscription.
func (m *Manager) Unsubscribe(subscriptionID uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, exists := m.subscriptions[subscriptionID]
	if !exists {
		return ErrSubscriptionNotFound
	}

	sub.Deactivate()
	delete(m.subscriptions, subscriptionID)

	subs := m.topicIndex[sub.Topic]
	for i, s := range subs {
		if s.ID == subscriptionID {
			m.topicIndex[sub.Topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(m.topicIndex[sub.Topic]) == 0 {
		delete(m.topicIndex, sub.Topic)
	}

	return nil
}

// NotifyDeadlineMissed reports a requested-deadline-missed status for
// topic. Every active subscription on the topic ingests the report.
func (m *Manager) NotifyDeadlineMissed(topic string, st status.RequestedDeadlineMissedStatus) {
	for _, sub := range m.topicSubscriptions(topic) {
		if sub.IsActive() {
			sub.Listener().OnRequestedDeadlineMissed(st)
		}
	}
}

// NotifyLivelinessChanged reports a liveliness-changed status for
// topic. Every active subscription on the topic ingests the report.
func (m *Manager) NotifyLivelinessChanged(topic string, st status.LivelinessChangedStatus) {
	for _, sub := range m.topicSubscriptions(topic) {
		if sub.IsActive() {
			sub.Listener().OnLivelinessChanged(st)
		}
	}
}

// topicSubscriptions snapshots the subscriptions on a topic. The
// snapshot is taken under the read lock; ingest happens outside it so a
// delivery callback may call back into the manager.
func (m *Manager) topicSubscriptions(topic string) []*Subscription {
	m.mu.RLock()
	defer m.mu.RUnlock()

	subs := m.topicIndex[topic]
	if len(subs) == 0 {
		return nil
	}
	out := make([]*Subscription, len(subs))
	copy(out, subs)
	return out
}

// ClearAll deactivates and removes all subscriptions.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subscriptions {
		sub.Deactivate()
	}
	m.subscriptions = make(map[uint32]*Subscription)
	m.topicIndex = make(map[string][]*Subscription)
}

// Count returns the number of active subscriptions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Get returns a subscription by ID.
func (m *Manager) Get(subscriptionID uint32) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, exists := m.subscriptions[subscriptionID]
	if !exists {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}
