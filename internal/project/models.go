package project

import "time"

// Run records one completed bake for history and inspection.
type Run struct {
	ID           int64
	RunID        string
	StartedAt    time.Time
	FinishedAt   *time.Time
	Mode         string
	Digits       int
	Cyclic       bool
	Events       int
	CurvesMarked int
	SeamIssues   int
	SummaryJSON  string
}

// DatabaseHealth captures diagnostic information about the project database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TablesPresent    []string
	MissingTables    []string
	IntegrityCheck   bool
	ObjectCount      int
	KeyframeCount    int
	Error            string
}
