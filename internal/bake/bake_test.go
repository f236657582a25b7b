package bake_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gofrs/flock"

	"segbake/internal/bake"
	"segbake/internal/project"
	"segbake/internal/scene"
	"segbake/internal/testsupport"
)

func TestRunFullBake(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBoundSegments())
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SaveScene(t, store, testsupport.NewSegmentScene(t))

	orch, err := bake.New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	summary, err := orch.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.RunID == "" {
		t.Fatal("expected run id assigned")
	}
	if summary.Mode != "local_rotation" {
		t.Fatalf("unexpected mode: %s", summary.Mode)
	}
	if summary.DigitsProcessed != 10 || !summary.Cyclic {
		t.Fatalf("unexpected sequence report: digits=%d cyclic=%v",
			summary.DigitsProcessed, summary.Cyclic)
	}
	if summary.FPS != 24 || summary.StartFrame != 1 {
		t.Fatalf("unexpected scene settings: fps=%d start=%d", summary.FPS, summary.StartFrame)
	}
	if summary.HoldFrames != 24 || summary.TransitionFrames != 5 {
		t.Fatalf("unexpected spans: hold=%d transition=%d",
			summary.HoldFrames, summary.TransitionFrames)
	}

	// 21 keyframes per curve, 3 axes, 7 segments.
	if summary.Events != 441 {
		t.Fatalf("expected 441 events, got %d", summary.Events)
	}
	if summary.LastKeyFrame != 241 {
		t.Fatalf("expected last key at frame 241, got %d", summary.LastKeyFrame)
	}
	if summary.CurvesMarked != 21 {
		t.Fatalf("expected 21 curves marked cyclic, got %d", summary.CurvesMarked)
	}
	if len(summary.SeamIssues) != 0 {
		t.Fatalf("expected clean loop seam, got %v", summary.SeamIssues)
	}
	if summary.ActionsCreated != 7 || summary.ActionsCopied != 0 || summary.ActionsOwned != 0 {
		t.Fatalf("unexpected ownership: created=%d copied=%d owned=%d",
			summary.ActionsCreated, summary.ActionsCopied, summary.ActionsOwned)
	}
	if !summary.FinishedAt.After(summary.StartedAt) && !summary.FinishedAt.Equal(summary.StartedAt) {
		t.Fatal("expected finished time at or after start time")
	}

	loaded, err := store.LoadScene(ctx)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	segA, err := loaded.Object("SegA")
	if err != nil {
		t.Fatalf("Object(SegA) failed: %v", err)
	}
	action := segA.Action()
	if action == nil || action.Name != "SegBake_SegA" {
		t.Fatalf("unexpected baked action: %+v", action)
	}
	curve := action.Curve(scene.PathRotationEuler, 0)
	if curve == nil {
		t.Fatal("expected baked rotation curve persisted")
	}
	if len(curve.Keyframes) != 21 {
		t.Fatalf("expected 21 persisted keyframes, got %d", len(curve.Keyframes))
	}
	if !curve.HasCycles() {
		t.Fatal("expected persisted cycles modifier")
	}

	runs, err := store.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != summary.RunID {
		t.Fatalf("unexpected run history: %+v", runs)
	}
	if runs[0].Events != summary.Events || runs[0].CurvesMarked != summary.CurvesMarked {
		t.Fatalf("run record mismatch: %+v", runs[0])
	}

	var recorded bake.Summary
	if err := json.Unmarshal([]byte(runs[0].SummaryJSON), &recorded); err != nil {
		t.Fatalf("unmarshal recorded summary: %v", err)
	}
	if recorded.RunID != summary.RunID || recorded.LastKeyFrame != summary.LastKeyFrame {
		t.Fatalf("recorded summary mismatch: %+v", recorded)
	}
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBoundSegments())
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SaveScene(t, store, testsupport.NewSegmentScene(t))

	orch, err := bake.New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if _, err := orch.Run(ctx); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	second, err := orch.Run(ctx)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if second.ActionsOwned != 7 || second.ActionsCreated != 0 {
		t.Fatalf("expected re-bake to reuse actions, got created=%d owned=%d",
			second.ActionsCreated, second.ActionsOwned)
	}
	if second.Events != 441 {
		t.Fatalf("expected identical event count on re-bake, got %d", second.Events)
	}
	// First bake marked every curve; re-baking must not stack modifiers.
	if second.CurvesMarked != 0 {
		t.Fatalf("expected no new cyclic marks on re-bake, got %d", second.CurvesMarked)
	}

	loaded, err := store.LoadScene(ctx)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	segA, err := loaded.Object("SegA")
	if err != nil {
		t.Fatalf("Object(SegA) failed: %v", err)
	}
	curve := segA.Action().Curve(scene.PathRotationEuler, 0)
	if len(curve.Keyframes) != 21 {
		t.Fatalf("expected re-bake to replace keys in place, got %d keyframes", len(curve.Keyframes))
	}
	if len(curve.Modifiers) != 1 {
		t.Fatalf("expected a single cycles modifier after re-bake, got %d", len(curve.Modifiers))
	}

	runs, err := store.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 recorded runs, got %d", len(runs))
	}
}

func TestRunRequiresScene(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBoundSegments())
	store := testsupport.MustOpenStore(t, cfg)

	orch, err := bake.New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := orch.Run(context.Background()); !errors.Is(err, project.ErrNoScene) {
		t.Fatalf("expected ErrNoScene, got %v", err)
	}
}

func TestRunFailsPreflight(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBoundSegments())
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SaveScene(t, store, testsupport.NewSegmentScene(t))
	cfg.Display.Segments.D = ""

	orch, err := bake.New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := orch.Run(context.Background()); !errors.Is(err, bake.ErrPreflight) {
		t.Fatalf("expected ErrPreflight, got %v", err)
	}
}

func TestRunRefusesLockedProject(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBoundSegments())
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SaveScene(t, store, testsupport.NewSegmentScene(t))

	orch, err := bake.New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	other := flock.New(orch.LockPath())
	held, err := other.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !held {
		t.Fatal("fixture could not take the project lock")
	}
	defer func() {
		_ = other.Unlock()
	}()

	if _, err := orch.Run(context.Background()); !errors.Is(err, bake.ErrProjectLocked) {
		t.Fatalf("expected ErrProjectLocked, got %v", err)
	}
}
