// Package logging builds the structured slog loggers used across segbake.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. The console format renders compact single-line records
// (UTC timestamp, level, component prefix, message, k=v attributes) for
// interactive use; the json format emits machine-readable records with
// stable ts/level/msg keys. Output can fan out to stdout/stderr and
// append-mode files in the configured log directory. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape, and derive per-component loggers with
// NewComponentLogger so the console prefix stays consistent.
package logging
