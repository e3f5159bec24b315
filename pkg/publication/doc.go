// Package publication implements publisher endpoint objects for the
// PULSE middleware layer.
//
// A Publication binds a topic to an owned events.PublisherListener and
// aggregates the publisher-side event kinds (OfferedDeadlineMissed,
// LivelinessLost). It mirrors pkg/subscription for the writing side of
// a participant; see that package for the consumption model.
package publication
