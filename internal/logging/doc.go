// Package logging builds the slog loggers used across the captioning
// pipeline.
//
// Two output formats are supported: a human-oriented console format
// (timestamp, level, component prefix, message, flattened key=value pairs)
// and machine-readable JSON. Loggers write to stdout/stderr and, when a log
// directory is configured, to captioner.log inside it.
//
// The package also carries the shared attribute helpers and field names so
// log keys stay consistent across packages, and a ProgressSampler that keeps
// long-running encode progress from flooding the log.
package logging
