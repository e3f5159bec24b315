// Package waitset implements the wait coordination primitives used by
// polling consumers of endpoint status events.
//
// # Condition
//
// A Condition is the hand-off point between "an event just arrived" and
// "a consumer is about to block". The producer side calls Signal after
// recording an event; the consumer side calls Wait with a bounded
// timeout. The signal is latched, so an event that arrives between the
// consumer's readiness check and its call to Wait is never missed.
//
// # WaitSet
//
// A WaitSet blocks on any number of Waitables at once. Wait attaches a
// shared Condition to every waitable, checks readiness, blocks until
// something becomes ready or the timeout elapses, and detaches before
// returning. This mirrors the check/block/re-check discipline required
// by the event listeners: the latched Condition closes the window where
// an event raised during the readiness check would otherwise be lost.
//
// A WaitSet serves a single consumer; concurrent Wait calls on one
// WaitSet are not supported.
package waitset
