// Package display assembles the seven-segment display unit: it resolves
// the configured segment bindings against a scene and pairs them with the
// transform machinery for the configured mode.
//
// Assembly is all-or-nothing. A display with any unbound or unresolvable
// segment refuses to assemble and the error names every gap, so a bake
// never starts against a partial display.
package display
