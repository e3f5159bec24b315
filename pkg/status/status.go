package status

// EventKind identifies a category of asynchronous status change an
// endpoint can report.
type EventKind uint8

const (
	// RequestedDeadlineMissed reports that a subscriber did not receive
	// a sample within its requested deadline period.
	RequestedDeadlineMissed EventKind = iota

	// LivelinessChanged reports that the liveliness of a matched
	// remote writer changed, as observed by a subscriber.
	LivelinessChanged

	// OfferedDeadlineMissed reports that a publisher failed to write a
	// sample within its offered deadline period.
	OfferedDeadlineMissed

	// LivelinessLost reports that a publisher failed to assert its own
	// liveliness within its lease duration.
	LivelinessLost
)

// String returns a human-readable event kind name.
func (k EventKind) String() string {
	switch k {
	case RequestedDeadlineMissed:
		return "REQUESTED_DEADLINE_MISSED"
	case LivelinessChanged:
		return "LIVELINESS_CHANGED"
	case OfferedDeadlineMissed:
		return "OFFERED_DEADLINE_MISSED"
	case LivelinessLost:
		return "LIVELINESS_LOST"
	default:
		return "UNKNOWN"
	}
}

// RequestedDeadlineMissedStatus is the record shape for the
// RequestedDeadlineMissed kind.
type RequestedDeadlineMissedStatus struct {
	// TotalCount is the cumulative number of missed deadlines (absolute).
	TotalCount int32

	// TotalCountChange is the number of missed deadlines since the
	// last report (delta).
	TotalCountChange int32
}

// LivelinessChangedStatus is the record shape for the
// LivelinessChanged kind.
type LivelinessChangedStatus struct {
	// AliveCount is the number of currently alive matched writers (absolute).
	AliveCount int32

	// NotAliveCount is the number of matched writers that are no
	// longer alive (absolute).
	NotAliveCount int32

	// AliveCountChange is the change in AliveCount since the last
	// report (delta, may be negative).
	AliveCountChange int32

	// NotAliveCountChange is the change in NotAliveCount since the
	// last report (delta, may be negative).
	NotAliveCountChange int32
}

// OfferedDeadlineMissedStatus is the record shape for the
// OfferedDeadlineMissed kind.
type OfferedDeadlineMissedStatus struct {
	// TotalCount is the cumulative number of missed deadlines (absolute).
	TotalCount int32

	// TotalCountChange is the number of missed deadlines since the
	// last report (delta).
	TotalCountChange int32
}

// LivelinessLostStatus is the record shape for the LivelinessLost kind.
type LivelinessLostStatus struct {
	// TotalCount is the cumulative number of times liveliness was lost (absolute).
	TotalCount int32

	// TotalCountChange is the number of losses since the last report (delta).
	TotalCountChange int32
}
