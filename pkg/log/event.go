package log

import (
	"time"

	"github.com/pulse-protocol/pulse-go/pkg/status"
)

// Event represents a middleware diagnostic event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// EntityID uniquely identifies the endpoint (GUID).
	EntityID string `cbor:"2,keyasint"`

	// Role indicates whether the endpoint is a subscriber or publisher.
	Role Role `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Topic is the endpoint's topic name, if known.
	Topic string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Status      *StatusEvent      `cbor:"10,keyasint,omitempty"` // Transport status report
	Delivery    *DeliveryEvent    `cbor:"11,keyasint,omitempty"` // Callback delivery / buffering
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Endpoint lifecycle
}

// Role indicates the endpoint role an event originates from.
type Role uint8

const (
	// RoleUnknown is used when the endpoint role is not set.
	RoleUnknown Role = 0
	// RoleSubscriber indicates a subscriber endpoint.
	RoleSubscriber Role = 1
	// RolePublisher indicates a publisher endpoint.
	RolePublisher Role = 2
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleSubscriber:
		return "subscriber"
	case RolePublisher:
		return "publisher"
	default:
		return "unknown"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryStatus is a status report ingested from the transport.
	CategoryStatus Category = 0
	// CategoryDelivery is a callback delivery or a buffered event.
	CategoryDelivery Category = 1
	// CategoryState is an endpoint lifecycle transition.
	CategoryState Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryStatus:
		return "status"
	case CategoryDelivery:
		return "delivery"
	case CategoryState:
		return "state"
	default:
		return "unknown"
	}
}

// StatusEvent captures a status report as ingested from the transport.
// Only the fields relevant to Kind are populated.
type StatusEvent struct {
	// Kind is the event kind the report belongs to.
	Kind status.EventKind `cbor:"1,keyasint"`

	// TotalCount / TotalCountChange for the deadline and
	// liveliness-lost kinds.
	TotalCount       int32 `cbor:"2,keyasint,omitempty"`
	TotalCountChange int32 `cbor:"3,keyasint,omitempty"`

	// Alive/NotAlive counts for the liveliness-changed kind.
	AliveCount          int32 `cbor:"4,keyasint,omitempty"`
	NotAliveCount       int32 `cbor:"5,keyasint,omitempty"`
	AliveCountChange    int32 `cbor:"6,keyasint,omitempty"`
	NotAliveCountChange int32 `cbor:"7,keyasint,omitempty"`
}

// DeliveryMode describes how an ingested event reached (or awaits) the
// consumer.
type DeliveryMode uint8

const (
	// DeliveryBuffered means no callback was registered; the event was
	// counted as unread.
	DeliveryBuffered DeliveryMode = 0
	// DeliveryImmediate means the registered callback was invoked with
	// a count of one.
	DeliveryImmediate DeliveryMode = 1
	// DeliveryFlush means a backlog of unread events was delivered on
	// callback registration.
	DeliveryFlush DeliveryMode = 2
)

// String returns the delivery mode name.
func (m DeliveryMode) String() string {
	switch m {
	case DeliveryBuffered:
		return "buffered"
	case DeliveryImmediate:
		return "immediate"
	case DeliveryFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// DeliveryEvent captures a callback delivery or a buffered event.
type DeliveryEvent struct {
	// Mode describes the delivery path taken.
	Mode DeliveryMode `cbor:"1,keyasint"`

	// Count is the event count delivered (or the unread total after
	// buffering).
	Count uint64 `cbor:"2,keyasint"`
}

// StateChangeEvent captures an endpoint lifecycle transition.
type StateChangeEvent struct {
	// OldState is the state before the transition.
	OldState string `cbor:"1,keyasint"`

	// NewState is the state after the transition.
	NewState string `cbor:"2,keyasint"`

	// Reason optionally explains the transition.
	Reason string `cbor:"3,keyasint,omitempty"`
}
