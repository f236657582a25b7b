// Package project persists the scene and its baked animation in SQLite.
//
// The Store manages database connections, schema migrations, and whole-scene
// save/load: objects with parent links and transforms, actions with their
// fcurves, keyframes, and modifiers, plus a history of bake runs for
// inspection. Saving replaces the stored scene wholesale; the database is a
// project file, not an event log.
//
// Schema changes are applied as ordered migrations from the embedded
// migrations directory, recorded in schema_migrations.
package project
