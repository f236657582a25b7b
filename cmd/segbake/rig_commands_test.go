package main

import (
	"encoding/json"
	"os"
	"testing"
)

func TestRigInitImportAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"rig", "init", "--path", env.rigPath}, env.configPath)
	if err != nil {
		t.Fatalf("rig init: %v", err)
	}
	requireContains(t, out, "Wrote sample rig")
	if _, err := os.Stat(env.rigPath); err != nil {
		t.Fatalf("expected rig file at %s: %v", env.rigPath, err)
	}

	if _, _, err := runCLI(t, []string{"rig", "init", "--path", env.rigPath}, env.configPath); err == nil {
		t.Fatal("expected error when rig file already exists")
	}

	out, _, err = runCLI(t, []string{"rig", "import", env.rigPath}, env.configPath)
	if err != nil {
		t.Fatalf("rig import: %v", err)
	}
	requireContains(t, out, "Imported 8 objects")

	out, _, err = runCLI(t, []string{"rig", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("rig show: %v", err)
	}
	requireContains(t, out, "SegTop")
	requireContains(t, out, "Seg Top Right")
	requireContains(t, out, "Display")
	requireContains(t, out, "8 objects at 24 fps")
}

func TestRigImportRefusesOverwrite(t *testing.T) {
	env := setupCLITestEnv(t)
	importSampleRig(t, env)

	_, _, err := runCLI(t, []string{"rig", "import", env.rigPath}, env.configPath)
	if err == nil {
		t.Fatal("expected error importing over an existing rig")
	}
	requireContains(t, err.Error(), "--replace")

	out, _, err := runCLI(t, []string{"rig", "import", env.rigPath, "--replace"}, env.configPath)
	if err != nil {
		t.Fatalf("rig import --replace: %v", err)
	}
	requireContains(t, out, "Imported 8 objects")
}

func TestRigShowEmptyProject(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"rig", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("rig show on empty project: %v", err)
	}
	requireContains(t, out, "has no rig")
}

func TestRigShowJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	importSampleRig(t, env)

	out, _, err := runCLI(t, []string{"--json", "rig", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("rig show --json: %v", err)
	}

	var views []rigObjectView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("parse rig show JSON: %v\noutput: %s", err, out)
	}
	if len(views) != 8 {
		t.Fatalf("expected 8 objects, got %d", len(views))
	}
	if views[0].Name != "Display" || views[0].Parent != "" {
		t.Fatalf("unexpected root object: %+v", views[0])
	}
	if views[1].Name != "SegTop" {
		t.Fatalf("expected SegTop second, got %s", views[1].Name)
	}
	if views[1].Parent != "Display" {
		t.Fatalf("expected SegTop parented to Display, got %q", views[1].Parent)
	}
	if views[1].Label != "Seg Top" {
		t.Fatalf("expected label Seg Top, got %q", views[1].Label)
	}
}

func TestRigClear(t *testing.T) {
	env := setupCLITestEnv(t)
	importSampleRig(t, env)

	out, _, err := runCLI(t, []string{"rig", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("rig clear: %v", err)
	}
	requireContains(t, out, "Cleared rig and animation")

	out, _, err = runCLI(t, []string{"rig", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("rig show after clear: %v", err)
	}
	requireContains(t, out, "has no rig")
}

func TestRigImportRejectsBadFile(t *testing.T) {
	env := setupCLITestEnv(t)

	badPath := env.rigPath
	content := "objects:\n  - name: A\n    parent: Missing\n"
	if err := os.WriteFile(badPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write bad rig: %v", err)
	}

	_, _, err := runCLI(t, []string{"rig", "import", badPath}, env.configPath)
	if err == nil {
		t.Fatal("expected error for dangling parent reference")
	}
	requireContains(t, err.Error(), "unknown parent")
}
