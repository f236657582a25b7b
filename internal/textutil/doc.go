// Package textutil provides small text helpers for CLI output.
//
// The primary use cases are:
//   - Turning object and action identifiers into readable table labels
//   - Picking between two values when formatting log fields
package textutil
