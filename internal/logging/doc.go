// Package logging assembles structured slog loggers and formatting helpers used
// across soundguard.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so engine code can automatically
// tag log lines with upload IDs, stages, and correlation IDs. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so verification
// decisions are emitted with the same shape everywhere.
package logging
