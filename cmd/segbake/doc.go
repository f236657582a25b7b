// Package main hosts the segbake CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into bake
// runs, rig imports, project inspection, and configuration scaffolding. It
// centralizes configuration resolution, project store access, and output
// rendering so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
