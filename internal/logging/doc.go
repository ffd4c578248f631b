// Package logging assembles the structured slog loggers used across
// HuskyWatch.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standardized field keys (component, source,
// run_id) so every part of a run logs data with the same shape. A no-op
// logger is available for tests and wiring code that cannot fail.
package logging
