package publication

import (
	"sync"

	"github.com/pulse-protocol/pulse-go/pkg/status"
)

// Manager manages the publisher endpoints of one participant.
type Manager struct {
	mu sync.RWMutex

	maxPublications int

	// Active publications by ID
	publications map[uint32]*Publication

	// Index by topic for efficient status dispatch
	topicIndex map[string][]*Publication
}

// NewManager creates a new publication manager.
func NewManager() *Manager {
	return &Manager{
		maxPublications: DefaultMaxPublications,
		publications:    make(map[uint32]*Publication),
		topicIndex:      make(map[string][]*Publication),
	}
}

// Publish creates a new publication on topic and returns it.
func (m *Manager) Publish(topic string) (*Publication, error) {
	if topic == "" {
		return nil, ErrInvalidTopic
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.publications) >= m.maxPublications {
		return nil, ErrResourceExhausted
	}

	pub := NewPublication(nextID(), topic)
	m.publications[pub.ID] = pub
	m.topicIndex[topic] = append(m.topicIndex[topic], pub)

	return pub, nil
}

// Unpublish deactivates and removes a publication.
func (m *Manager) Unpublish(publicationID uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pub, exists := m.publications[publicationID]
	if !exists {
		return ErrPublicationNotFound
	}

	pub.Deactivate()
	delete(m.publications, publicationID)

	pubs := m.topicIndex[pub.Topic]
	for i, p := range pubs {
		if p.ID == publicationID {
			m.topicIndex[pub.Topic] = append(pubs[:i], pubs[i+1:]...)
			break
		}
	}
	if len(m.topicIndex[pub.Topic]) == 0 {
		delete(m.topicIndex, pub.Topic)
	}

	return nil
}

// NotifyDeadlineMissed reports an offered-deadline-missed status for
// topic. Every active publication on the topic ingests the report.
func (m *Manager) NotifyDeadlineMissed(topic string, st status.OfferedDeadlineMissedStatus) {
	for _, pub := range m.topicPublications(topic) {
		if pub.IsActive() {
			pub.Listener().OnOfferedDeadlineMissed(st)
		}
	}
}

// NotifyLivelinessLost reports a liveliness-lost status for topic.
// Every active publication on the topic ingests the report.
func (m *Manager) NotifyLivelinessLost(topic string, st status.LivelinessLostStatus) {
	for _, pub := range m.topicPublications(topic) {
		if pub.IsActive() {
			pub.Listener().OnLivelinessLost(st)
		}
	}
}

// topicPublications snapshots the publications on a topic. Ingest
// happens outside the lock so a delivery callback may call back into
// the manager.
func (m *Manager) topicPublications(topic string) []*Publication {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pubs := m.topicIndex[topic]
	if len(pubs) == 0 {
		return nil
	}
	out := make([]*Publication, len(pubs))
	copy(out, pubs)
	return out
}

// Count returns the number of active publications.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.publications)
}

// Get returns a publication by ID.
func (m *Manager) Get(publicationID uint32) (*Publication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pub, exists := m.publications[publicationID]
	if !exists {
		return nil, ErrPublicationNotFound
	}
	return pub, nil
}
