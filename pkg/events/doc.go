// Package events implements per-endpoint status event aggregation for
// the PULSE middleware layer.
//
// The transport reports asynchronous status changes (deadline missed,
// liveliness changed) to a listener, which merges them into compact
// accumulator records: absolute fields are overwritten with the latest
// transport snapshot, delta fields are summed until consumed. A
// consumer drains the accumulators in one of two modes:
//
//   - Polling: HasEvent gives a cheap lock-free readiness hint,
//     TakeEvent copies the record out and resets the deltas, and a
//     waitset.Condition lets the consumer block between polls without
//     missing a report that arrives mid-check.
//   - Callback: SetDeliveryCallback registers a delivery callback that
//     is invoked once per ingested report on the ingesting goroutine.
//     Events raised before registration are counted and flushed exactly
//     once when the callback is installed.
//
// # Locking
//
// Each listener keeps three independent critical sections: the data
// lock guarding accumulators, the condition slot guarding the wakeup
// hand-off, and the registration lock guarding the callback pair and
// unread count. Lock order on the ingest path is data lock, then
// condition. Foreign callbacks are only ever invoked with no listener
// lock held, so a callback may safely re-enter the listener.
package events
