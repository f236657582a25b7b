package testsupport

import (
	"context"
	"testing"

	"segbake/internal/config"
	"segbake/internal/project"
	"segbake/internal/scene"
)

// MustOpenStore opens a project.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *project.Store {
	t.Helper()

	store, err := project.Open(cfg)
	if err != nil {
		t.Fatalf("project.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SaveScene stores a scene for tests using the provided store.
func SaveScene(t testing.TB, store *project.Store, sc *scene.Scene) {
	t.Helper()

	if err := store.SaveScene(context.Background(), sc); err != nil {
		t.Fatalf("store.SaveScene: %v", err)
	}
}
