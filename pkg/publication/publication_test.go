package publication

import (
	"errors"
	"sync"
	"testing"

	"github.com/pulse-protocol/pulse-go/pkg/log"
	"github.com/pulse-protocol/pulse-go/pkg/status"
)

// captureLogger records logged events for inspection.
type captureLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureLogger) Log(event log.Event) {
	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()
}

func (c *captureLogger) captured() []log.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]log.Event(nil), c.events...)
}

func TestPublicationBasic(t *testing.T) {
	pub := NewPublication(1, "sensor/temperature")

	if pub.ID != 1 {
		t.Errorf("ID = %d, want 1", pub.ID)
	}
	if !pub.IsActive() {
		t.Error("IsActive() = false, want true")
	}
	if pub.Listener() == nil {
		t.Fatal("Listener() = nil")
	}
}

func TestPublicationDeactivateLogsStateChange(t *testing.T) {
	pub := NewPublication(1, "robot/cmd")
	capture := &captureLogger{}
	pub.Listener().SetLogger(capture, pub.GUID.String(), log.RolePublisher, "robot/cmd")

	pub.Deactivate()

	events := capture.captured()
	if len(events) != 1 {
		t.Fatalf("got %d events after deactivate, want 1", len(events))
	}
	e := events[0]
	if e.Category != log.CategoryState {
		t.Errorf("Category = %v, want CategoryState", e.Category)
	}
	if e.StateChange == nil {
		t.Fatal("StateChange payload missing")
	}
	if e.StateChange.OldState != "active" || e.StateChange.NewState != "inactive" {
		t.Errorf("transition = %s -> %s, want active -> inactive",
			e.StateChange.OldState, e.StateChange.NewState)
	}

	// A second deactivate is a no-op transition and logs nothing
	pub.Deactivate()
	if got := len(capture.captured()); got != 1 {
		t.Errorf("got %d events after repeat deactivate, want 1", got)
	}
}

func TestPublicationCapability(t *testing.T) {
	pub := NewPublication(1, "t")

	if !pub.SupportsEvent(status.OfferedDeadlineMissed) {
		t.Error("SupportsEvent(OfferedDeadlineMissed) = false")
	}
	if !pub.SupportsEvent(status.LivelinessLost) {
		t.Error("SupportsEvent(LivelinessLost) = false")
	}
	if pub.SupportsEvent(status.LivelinessChanged) {
		t.Error("SupportsEvent(LivelinessChanged) = true on a publication")
	}
}

func TestManagerPublishAndNotify(t *testing.T) {
	m := NewManager()
	pub, err := m.Publish("sensor/temperature")
	if err != nil {
		t.Fatalf("Publish error = %v", err)
	}
	other, _ := m.Publish("sensor/humidity")

	m.NotifyLivelinessLost("sensor/temperature", status.LivelinessLostStatus{
		TotalCount: 1, TotalCountChange: 1,
	})

	if !pub.HasEvent(status.LivelinessLost) {
		t.Error("publication did not receive the report")
	}
	if other.HasEvent(status.LivelinessLost) {
		t.Error("unrelated publication received the report")
	}

	var st status.LivelinessLostStatus
	if !pub.TakeEvent(status.LivelinessLost, &st) {
		t.Fatal("TakeEvent returned false")
	}
	if st.TotalCount != 1 || st.TotalCountChange != 1 {
		t.Errorf("TakeEvent = %+v, want TotalCount=1 TotalCountChange=1", st)
	}
}

func TestManagerUnpublish(t *testing.T) {
	m := NewManager()
	pub, _ := m.Publish("t")

	if err := m.Unpublish(pub.ID); err != nil {
		t.Fatalf("Unpublish error = %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("Count = %d, want 0", m.Count())
	}
	if pub.IsActive() {
		t.Error("publication still active after Unpublish")
	}

	err := m.Unpublish(pub.ID)
	if !errors.Is(err, ErrPublicationNotFound) {
		t.Errorf("second Unpublish error = %v, want ErrPublicationNotFound", err)
	}

	// Reports after removal are not delivered
	m.NotifyDeadlineMissed("t", status.OfferedDeadlineMissedStatus{TotalCountChange: 1})
	if pub.HasEvent(status.OfferedDeadlineMissed) {
		t.Error("removed publication received a report")
	}
}

func TestManagerEmptyTopic(t *testing.T) {
	m := NewManager()

	_, err := m.Publish("")
	if !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Publish error = %v, want ErrInvalidTopic", err)
	}
}
