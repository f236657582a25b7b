package main

import (
	"encoding/json"
	"testing"

	"segbake/internal/bake"
)

func TestGenerateFullFlow(t *testing.T) {
	env := setupCLITestEnv(t)
	importSampleRig(t, env)

	out, _, err := runCLI(t, []string{"generate"}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, out, "Generated animation for 10 digits (cyclic)")
	requireContains(t, out, "Mode: local_rotation")
	requireContains(t, out, "Frames: 1-241 at 24 fps")
	requireContains(t, out, "Timing: 24 frame hold, 5 frame transition")
	requireContains(t, out, "Keyframe events: 441")
	requireContains(t, out, "Curves marked cyclic: 21")
	requireContains(t, out, "Actions: 7 created, 0 copied, 0 already owned")

	out, _, err = runCLI(t, []string{"curves"}, env.configPath)
	if err != nil {
		t.Fatalf("curves: %v", err)
	}
	requireContains(t, out, "SegBake_SegTop")
	requireContains(t, out, "1-241")
	requireContains(t, out, "21 curves")

	out, _, err = runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "local_rotation")
	requireContains(t, out, "441")

	out, _, err = runCLI(t, []string{"health"}, env.configPath)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	requireContains(t, out, "Missing tables: none")
	requireContains(t, out, "Objects: 8")
	requireContains(t, out, "Keyframes: 441")
}

func TestGenerateJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	importSampleRig(t, env)

	out, _, err := runCLI(t, []string{"--json", "generate"}, env.configPath)
	if err != nil {
		t.Fatalf("generate --json: %v", err)
	}

	var summary bake.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("parse generate JSON: %v\noutput: %s", err, out)
	}
	if summary.RunID == "" {
		t.Fatal("expected a run id")
	}
	if summary.DigitsProcessed != 10 || !summary.Cyclic {
		t.Fatalf("unexpected sequence summary: %+v", summary)
	}
	if summary.Events != 441 {
		t.Fatalf("expected 441 events, got %d", summary.Events)
	}
	if len(summary.SeamIssues) != 0 {
		t.Fatalf("expected no seam issues, got %v", summary.SeamIssues)
	}
}

func TestGenerateTwiceMarksCurvesOnce(t *testing.T) {
	env := setupCLITestEnv(t)
	importSampleRig(t, env)

	if _, _, err := runCLI(t, []string{"generate"}, env.configPath); err != nil {
		t.Fatalf("first generate: %v", err)
	}

	out, _, err := runCLI(t, []string{"generate"}, env.configPath)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	requireContains(t, out, "Curves marked cyclic: 0")
	requireContains(t, out, "Actions: 0 created, 0 copied, 7 already owned")

	out, _, err = runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "local_rotation")
}

func TestGenerateRequiresRig(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"generate"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for empty project")
	}
	requireContains(t, err.Error(), "has no rig")
}

func TestGeneratePreflightFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	importSampleRig(t, env)

	unbound := `a = "SegTop"
b = "SegTopRight"
c = "SegBottomRight"
d = "SegBottom"
e = "SegBottomLeft"
f = "SegTopLeft"`
	writeTestConfig(t, env.configPath, env.projectPath, env.baseDir+"/logs", unbound)

	_, _, err := runCLI(t, []string{"generate"}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure for unbound segment")
	}
	requireContains(t, err.Error(), "preflight")
	requireContains(t, err.Error(), "G")
}

func TestGenerateProjectOverride(t *testing.T) {
	env := setupCLITestEnv(t)
	importSampleRig(t, env)

	override := env.baseDir + "/other/other.db"
	_, _, err := runCLI(t, []string{"generate", "--project", override}, env.configPath)
	if err == nil {
		t.Fatal("expected error: override project has no rig")
	}
	requireContains(t, err.Error(), "has no rig")
	requireContains(t, err.Error(), "other.db")
}
