// Package status defines the event kinds and status record shapes
// reported by PULSE transport endpoints.
//
// # Event Kinds
//
// Each endpoint role supports a fixed set of kinds:
//   - Subscribers: RequestedDeadlineMissed, LivelinessChanged
//   - Publishers: OfferedDeadlineMissed, LivelinessLost
//
// # Absolute and Delta Fields
//
// Every status record mixes two field semantics:
//   - Absolute fields carry the transport's latest snapshot and are
//     overwritten on every report (the transport is the source of
//     truth for current state).
//   - Delta fields carry the change since the transport's previous
//     report and are summed into an accumulator until consumed.
//
// Liveliness deltas may be negative: a remote writer regaining
// liveliness decreases the not-alive count.
package status
