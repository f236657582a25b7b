package project_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"segbake/internal/project"
	"segbake/internal/scene"
	"segbake/internal/spatial"
	"segbake/internal/testsupport"
)

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	health, err := store.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable {
		t.Fatalf("expected healthy database, got %#v", health)
	}
	if len(health.MissingTables) != 0 {
		t.Fatalf("expected no missing tables, got %v", health.MissingTables)
	}
	if !health.IntegrityCheck {
		t.Fatal("expected integrity check to pass")
	}
}

func TestSceneRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	sc := scene.New(30, 10)
	sc.FrameCurrent = 42

	root := scene.NewObject("Display")
	root.Location = spatial.Vec3{X: 1, Y: 2, Z: 3}
	if err := sc.AddObject(root); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}

	seg := scene.NewObject("SegA")
	seg.Parent = root
	seg.Rotation = spatial.Vec3{X: math.Pi, Y: 0, Z: 0.5}
	seg.Scale = spatial.Vec3{X: 2, Y: 2, Z: 2}
	seg.RotationMode = "QUATERNION"
	action := scene.NewAction("SegBake_SegA")
	curve := action.EnsureCurve(scene.PathRotationEuler, 0)
	curve.Insert(1, 0)
	curve.Insert(20, math.Pi)
	curve.EnsureCycles()
	seg.AssignAction(action)
	if err := sc.AddObject(seg); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}

	if err := store.SaveScene(ctx, sc); err != nil {
		t.Fatalf("SaveScene failed: %v", err)
	}

	loaded, err := store.LoadScene(ctx)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if loaded.FPS != 30 || loaded.FrameStart != 10 || loaded.FrameCurrent != 42 {
		t.Fatalf("unexpected playback settings: fps=%d start=%d current=%d",
			loaded.FPS, loaded.FrameStart, loaded.FrameCurrent)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", loaded.Len())
	}

	gotRoot, err := loaded.Object("Display")
	if err != nil {
		t.Fatalf("Object(Display) failed: %v", err)
	}
	if gotRoot.Location != (spatial.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("unexpected root location: %+v", gotRoot.Location)
	}

	gotSeg, err := loaded.Object("SegA")
	if err != nil {
		t.Fatalf("Object(SegA) failed: %v", err)
	}
	if gotSeg.Parent != gotRoot {
		t.Fatal("expected parent link restored to the loaded root")
	}
	if gotSeg.RotationMode != "QUATERNION" {
		t.Fatalf("expected rotation mode preserved, got %q", gotSeg.RotationMode)
	}
	if gotSeg.Rotation != (spatial.Vec3{X: math.Pi, Y: 0, Z: 0.5}) {
		t.Fatalf("unexpected rotation: %+v", gotSeg.Rotation)
	}
	if gotSeg.Scale != (spatial.Vec3{X: 2, Y: 2, Z: 2}) {
		t.Fatalf("unexpected scale: %+v", gotSeg.Scale)
	}

	gotAction := gotSeg.Action()
	if gotAction == nil {
		t.Fatal("expected action restored")
	}
	if gotAction.Name != "SegBake_SegA" {
		t.Fatalf("unexpected action name: %q", gotAction.Name)
	}
	if gotAction.Users() != 1 {
		t.Fatalf("expected 1 user, got %d", gotAction.Users())
	}
	gotCurve := gotAction.Curve(scene.PathRotationEuler, 0)
	if gotCurve == nil {
		t.Fatal("expected rotation curve restored")
	}
	if len(gotCurve.Keyframes) != 2 {
		t.Fatalf("expected 2 keyframes, got %d", len(gotCurve.Keyframes))
	}
	if gotCurve.Keyframes[0].Frame != 1 || gotCurve.Keyframes[1].Frame != 20 {
		t.Fatalf("unexpected keyframe frames: %+v", gotCurve.Keyframes)
	}
	if gotCurve.Keyframes[1].Value != math.Pi {
		t.Fatalf("unexpected keyframe value: %v", gotCurve.Keyframes[1].Value)
	}
	if !gotCurve.HasCycles() {
		t.Fatal("expected cycles modifier restored")
	}
}

func TestSharedActionSurvivesRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	sc := scene.New(scene.DefaultFPS, 1)
	shared := scene.NewAction("Shared")
	shared.EnsureCurve(scene.PathLocation, 2).Insert(5, 1.5)

	a := scene.NewObject("SegA")
	a.AssignAction(shared)
	b := scene.NewObject("SegB")
	b.AssignAction(shared)
	for _, obj := range []*scene.Object{a, b} {
		if err := sc.AddObject(obj); err != nil {
			t.Fatalf("AddObject failed: %v", err)
		}
	}
	if shared.Users() != 2 {
		t.Fatalf("fixture expected 2 users, got %d", shared.Users())
	}

	if err := store.SaveScene(ctx, sc); err != nil {
		t.Fatalf("SaveScene failed: %v", err)
	}
	loaded, err := store.LoadScene(ctx)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	gotA, err := loaded.Object("SegA")
	if err != nil {
		t.Fatalf("Object(SegA) failed: %v", err)
	}
	gotB, err := loaded.Object("SegB")
	if err != nil {
		t.Fatalf("Object(SegB) failed: %v", err)
	}
	if gotA.Action() == nil || gotA.Action() != gotB.Action() {
		t.Fatal("expected both objects to share one restored action")
	}
	if gotA.Action().Users() != 2 {
		t.Fatalf("expected 2 users after load, got %d", gotA.Action().Users())
	}
}

func TestLoadSceneEmptyProject(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.LoadScene(context.Background()); !errors.Is(err, project.ErrNoScene) {
		t.Fatalf("expected ErrNoScene, got %v", err)
	}
	if _, _, _, err := store.SceneInfo(context.Background()); !errors.Is(err, project.ErrNoScene) {
		t.Fatalf("expected ErrNoScene from SceneInfo, got %v", err)
	}

	has, err := store.HasScene(context.Background())
	if err != nil {
		t.Fatalf("HasScene failed: %v", err)
	}
	if has {
		t.Fatal("expected no scene in a fresh project")
	}
}

func TestSaveSceneReplacesPrevious(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := testsupport.NewSegmentScene(t)
	testsupport.SaveScene(t, store, first)

	second := scene.New(scene.DefaultFPS, 1)
	only := scene.NewObject("Solo")
	only.EnsureOwnAction("SegBake")
	if err := only.InsertKeyframe(scene.PathScale, 7); err != nil {
		t.Fatalf("InsertKeyframe failed: %v", err)
	}
	if err := second.AddObject(only); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}
	testsupport.SaveScene(t, store, second)

	loaded, err := store.LoadScene(ctx)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected replacement scene with 1 object, got %d", loaded.Len())
	}
	if _, err := loaded.Object("SegA"); err == nil {
		t.Fatal("expected old objects gone after replacement")
	}

	health, err := store.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if health.ObjectCount != 1 {
		t.Fatalf("expected 1 stored object, got %d", health.ObjectCount)
	}
	if health.KeyframeCount != 3 {
		t.Fatalf("expected 3 stored keyframes, got %d", health.KeyframeCount)
	}
}

func TestRunHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	started := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	finished := started.Add(3 * time.Second)
	first := &project.Run{
		RunID:        "run-1",
		StartedAt:    started,
		FinishedAt:   &finished,
		Mode:         "local_rotation",
		Digits:       10,
		Cyclic:       true,
		Events:       126,
		CurvesMarked: 21,
		SummaryJSON:  `{"last_frame":241}`,
	}
	if err := store.RecordRun(ctx, first); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected run ID to be assigned")
	}

	second := &project.Run{
		RunID:     "run-2",
		StartedAt: started.Add(time.Minute),
		Mode:      "scale",
		Digits:    3,
		Events:    30,
	}
	if err := store.RecordRun(ctx, second); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := store.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != "run-2" || runs[1].RunID != "run-1" {
		t.Fatalf("expected newest first, got %s then %s", runs[0].RunID, runs[1].RunID)
	}
	if !runs[1].Cyclic {
		t.Fatal("expected cyclic flag preserved")
	}
	if runs[1].FinishedAt == nil || !runs[1].FinishedAt.Equal(finished) {
		t.Fatalf("expected finished time preserved, got %v", runs[1].FinishedAt)
	}
	if !runs[1].StartedAt.Equal(started) {
		t.Fatalf("expected started time preserved, got %v", runs[1].StartedAt)
	}
	if runs[1].SummaryJSON != `{"last_frame":241}` {
		t.Fatalf("unexpected summary: %q", runs[1].SummaryJSON)
	}
	if runs[0].FinishedAt != nil {
		t.Fatal("expected unfinished run to keep nil finished time")
	}

	limited, err := store.Runs(ctx, 1)
	if err != nil {
		t.Fatalf("Runs with limit failed: %v", err)
	}
	if len(limited) != 1 || limited[0].RunID != "run-2" {
		t.Fatalf("unexpected limited result: %+v", limited)
	}

	last, err := store.LastRun(ctx)
	if err != nil {
		t.Fatalf("LastRun failed: %v", err)
	}
	if last == nil || last.RunID != "run-2" {
		t.Fatalf("unexpected last run: %+v", last)
	}
}

func TestClearKeepsRunHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SaveScene(t, store, testsupport.NewSegmentScene(t))
	run := &project.Run{RunID: "run-1", StartedAt: time.Now().UTC(), Mode: "scale", Digits: 2}
	if err := store.RecordRun(ctx, run); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	has, err := store.HasScene(ctx)
	if err != nil {
		t.Fatalf("HasScene failed: %v", err)
	}
	if has {
		t.Fatal("expected scene cleared")
	}
	if _, err := store.LoadScene(ctx); !errors.Is(err, project.ErrNoScene) {
		t.Fatalf("expected ErrNoScene after clear, got %v", err)
	}

	runs, err := store.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected run history kept, got %d runs", len(runs))
	}
}
