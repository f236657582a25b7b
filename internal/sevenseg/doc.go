// Package sevenseg defines the seven-segment display domain model: segment
// identifiers, per-digit lit patterns, and counting sequences.
//
// The canonical segment layout is A (top), B (top right), C (bottom right),
// D (bottom), E (bottom left), F (top left), and G (middle). PatternOf maps
// each decimal digit to the standard encoding used by physical displays;
// CountSpec expands a counting request (up, down, or an explicit range) into
// the ordered digit sequence the timeline compiler consumes.
//
// Everything in this package is pure data. Validate a CountSpec once at the
// configuration edge; Sequence assumes a valid spec and never fails.
package sevenseg
