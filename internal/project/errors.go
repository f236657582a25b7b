package project

import "errors"

// ErrNoScene is returned when loading from a project that has no stored
// scene yet. Import a rig first.
var ErrNoScene = errors.New("project: no scene stored")
