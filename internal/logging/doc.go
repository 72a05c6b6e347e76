// Package logging assembles structured slog loggers and formatting helpers used
// by the artifex command-line tools.
//
// It owns the console and JSON handlers, keeps all diagnostics on stderr so
// stdout stays reserved for command results, and exposes context-aware helpers
// that tag log lines with the running sub-command and run identifier. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
