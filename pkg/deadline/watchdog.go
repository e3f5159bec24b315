package deadline

import (
	"errors"
	"sync"
	"time"
)

// Deadline watchdog errors.
var (
	ErrWatchNotFound = errors.New("deadline watch not found")
	ErrInvalidPeriod = errors.New("invalid deadline period")
)

// Period limits.
const (
	// MinPeriod is the minimum allowed deadline period.
	MinPeriod = 1 * time.Millisecond

	// MaxPeriod is the maximum allowed deadline period (24 hours).
	MaxPeriod = 24 * time.Hour
)

// Watch represents an active deadline watch on one topic.
type Watch struct {
	// Topic is the watched topic.
	Topic string

	// Period is the promised maximum gap between samples.
	Period time.Duration

	// LastSample is when the last sample arrived, or when the watch
	// started if none has.
	LastSample time.Time

	// Missed is the cumulative number of missed periods.
	Missed int32

	// timer fires when the period elapses without a sample
	timer *time.Timer

	// gen distinguishes this watch from any replaced watch on the same
	// topic, so a replaced watch's in-flight timer callback cannot
	// charge its successor a miss.
	gen uint64
}

// NextDeadline returns when the current period expires.
func (w *Watch) NextDeadline() time.Time {
	return w.LastSample.Add(w.Period)
}

// RemainingTime returns time until the current period expires.
func (w *Watch) RemainingTime() time.Duration {
	remaining := w.Period - time.Since(w.LastSample)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MissFunc receives deadline miss reports. total is the cumulative miss
// count of the watch, change the increment since the last report.
type MissFunc func(topic string, total, change int32)

// Monitor tracks deadline contracts for a set of topics.
type Monitor struct {
	mu sync.RWMutex

	// Active watches by topic
	watches map[string]*Watch

	// Monotonic generation source for watch replacement
	nextGen uint64

	// Callback for miss reports
	onMiss MissFunc
}

// NewMonitor creates a deadline monitor with no active watches.
func NewMonitor() *Monitor {
	return &Monitor{
		watches: make(map[string]*Watch),
	}
}

// Watch starts or replaces the deadline watch on topic. The first
// period starts immediately. Replacing a watch resets its miss total.
// Returns an error if period is out of range.
func (m *Monitor) Watch(topic string, period time.Duration) error {
	if period < MinPeriod || period > MaxPeriod {
		return ErrInvalidPeriod
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, exists := m.watches[topic]; exists {
		existing.timer.Stop()
	}

	m.nextGen++
	gen := m.nextGen
	w := &Watch{
		Topic:      topic,
		Period:     period,
		LastSample: time.Now(),
		gen:        gen,
	}
	w.timer = time.AfterFunc(period, func() {
		m.miss(topic, gen)
	})

	m.watches[topic] = w
	return nil
}

// RecordSample records a sample arrival on topic, re-arming its
// deadline for a full period.
func (m *Monitor) RecordSample(topic string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, exists := m.watches[topic]
	if !exists {
		return ErrWatchNotFound
	}

	w.LastSample = time.Now()
	w.timer.Reset(w.Period)
	return nil
}

// Cancel stops the watch on topic without a final miss report.
func (m *Monitor) Cancel(topic string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, exists := m.watches[topic]
	if !exists {
		return ErrWatchNotFound
	}

	w.timer.Stop()
	delete(m.watches, topic)
	return nil
}

// CancelAll stops every watch (e.g. on shutdown).
func (m *Monitor) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for topic, w := range m.watches {
		w.timer.Stop()
		delete(m.watches, topic)
	}
}

// GetWatch returns a snapshot of the watch on topic, or nil if none.
func (m *Monitor) GetWatch(topic string) *Watch {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if w, exists := m.watches[topic]; exists {
		return &Watch{
			Topic:      w.Topic,
			Period:     w.Period,
			LastSample: w.LastSample,
			Missed:     w.Missed,
		}
	}
	return nil
}

// Count returns the number of active watches.
func (m *Monitor) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.watches)
}

// OnMiss sets the callback invoked on every missed period.
func (m *Monitor) OnMiss(fn MissFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onMiss = fn
}

// miss handles one elapsed period without a sample. gen identifies the
// watch whose timer fired; a cancelled or replaced watch's in-flight
// callback finds a mismatch and returns without charging anything.
func (m *Monitor) miss(topic string, gen uint64) {
	m.mu.Lock()

	w, exists := m.watches[topic]
	if !exists || w.gen != gen {
		m.mu.Unlock()
		return
	}

	w.Missed++
	total := w.Missed

	// The next period starts at the deadline that was just missed.
	w.LastSample = time.Now()
	w.timer.Reset(w.Period)

	callback := m.onMiss
	m.mu.Unlock()

	// Report outside the lock
	if callback != nil {
		callback(topic, total, 1)
	}
}
