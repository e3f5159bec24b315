// Package deadline implements deadline period tracking for endpoints.
//
// A deadline contract promises a new sample on a topic at least once
// per period. The Monitor arms one timer per watched topic; every
// received sample re-arms it, and a period elapsing without a sample
// counts as one miss and re-arms the timer for the next period.
//
// # Miss Reporting
//
// Misses are reported through the OnMiss callback with the topic, the
// cumulative miss total for that watch, and the increment since the
// last report. The callback is invoked outside the monitor's lock and
// may call back into the monitor.
//
// # Watch Replacement
//
// Watching an already-watched topic replaces the existing watch and
// resets its miss total. There is no stacking.
//
// # Cancellation
//
// Cancelling a watch stops its timer without a final miss report.
// Cancelled and unknown topics are indistinguishable to RecordSample,
// which returns ErrWatchNotFound for both.
package deadline
