// Package logging assembles structured slog loggers and formatting helpers used
// across strmctl.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing (including the rotating log file), and exposes context-aware helpers
// so every backend call is tagged with its action, endpoint, and correlation
// ID. The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
