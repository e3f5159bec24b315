// Package subscription implements subscriber endpoint objects for the
// PULSE middleware layer.
//
// A Subscription binds a topic to an owned events.SubscriberListener.
// The transport reports status changes through the Manager, which fans
// each report out to every subscription on the affected topic; the
// application consumes them from the subscription's listener, either by
// polling (HasEvent/TakeEvent, optionally blocking in a wait set) or by
// registering a delivery callback.
//
// # Capability Checks
//
// Subscriptions aggregate only the subscriber-side event kinds
// (RequestedDeadlineMissed, LivelinessChanged). SupportsEvent is the
// capability predicate; TakeEvent on an unsupported kind returns false
// without side effects and HasEvent returns false.
//
// # Lifecycle
//
// Subscriptions are created through Manager.Subscribe and removed with
// Manager.Unsubscribe. A removed subscription is deactivated; its
// listener stops receiving transport reports but retains any
// unconsumed state.
package subscription
