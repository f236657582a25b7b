// Package bake orchestrates a complete bake: preflight checks, project
// locking, scene loading, display assembly, action ownership, timeline
// compilation, and persistence of both the scene and the run record.
//
// A bake never touches the scene playhead and never writes partial results:
// the compiled scene is saved in one transaction, and the project lock keeps
// concurrent bakes off the same database.
package bake
