// Package log provides structured diagnostics logging for PULSE.
//
// This package defines the Logger interface and Event types for
// capturing the middleware's status-event activity: transport status
// reports, callback deliveries, and consumer wait/take activity. It is
// separate from operational logging (slog) - event capture provides a
// complete machine-readable trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	listener.SetLogger(log.NewSlogAdapter(slog.Default()), id, log.RoleSubscriber)
//
//	// For production: write to binary file
//	fl, _ := log.NewFileLogger("/var/log/pulse/events.plog")
//	listener.SetLogger(fl, id, log.RoleSubscriber)
//
//	// Both: use MultiLogger
//	listener.SetLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fl,
//	), id, log.RoleSubscriber)
//
// # Event Types
//
// Events carry one typed payload:
//   - StatusEvent: a status report ingested from the transport
//   - DeliveryEvent: a callback delivery or buffered (unread) event
//   - StateChangeEvent: endpoint lifecycle transitions
//
// # File Format
//
// Log files use CBOR encoding with integer keys and the .plog
// extension. Reader decodes them back into events.
package log
