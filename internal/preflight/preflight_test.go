package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"segbake/internal/config"
)

func readyConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.Project = filepath.Join(t.TempDir(), "segbake.db")
	cfg.Display.Segments = config.Segments{
		A: "SegA", B: "SegB", C: "SegC", D: "SegD", E: "SegE", F: "SegF", G: "SegG",
	}
	return &cfg
}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckProjectFile_MissingPasses(t *testing.T) {
	result := CheckProjectFile(filepath.Join(t.TempDir(), "segbake.db"))
	if !result.Passed {
		t.Fatalf("expected pass for absent database, got: %s", result.Detail)
	}
}

func TestCheckProjectFile_Existing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segbake.db")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckProjectFile(path)
	if !result.Passed {
		t.Fatalf("expected pass for writable file, got: %s", result.Detail)
	}
}

func TestCheckProjectFile_Directory(t *testing.T) {
	result := CheckProjectFile(t.TempDir())
	if result.Passed {
		t.Fatal("expected failure for directory path")
	}
}

func TestCheckSegmentBindings(t *testing.T) {
	cfg := readyConfig(t)
	result := CheckSegmentBindings(cfg)
	if !result.Passed {
		t.Fatalf("expected pass for bound config, got: %s", result.Detail)
	}

	cfg.Display.Segments.C = ""
	cfg.Display.Segments.F = "  "
	result = CheckSegmentBindings(cfg)
	if result.Passed {
		t.Fatal("expected failure for unbound positions")
	}
	if result.Detail != "unbound positions: C, F" {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckTiming(t *testing.T) {
	cfg := readyConfig(t)
	result := CheckTiming(cfg)
	if !result.Passed {
		t.Fatalf("expected pass for default timing, got: %s", result.Detail)
	}

	cfg.Timing.Unit = "seconds"
	cfg.Timing.Speed = 0.01
	result = CheckTiming(cfg)
	if result.Passed {
		t.Fatal("expected failure for sub-frame speed")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ReadyConfig(t *testing.T) {
	cfg := readyConfig(t)

	results := RunAll(cfg)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if failed := Failed(results); failed != nil {
		t.Fatalf("expected no failed checks, got %d", len(failed))
	}
}

func TestRunAll_ReportsFailures(t *testing.T) {
	cfg := readyConfig(t)
	cfg.Display.Segments.A = ""

	failed := Failed(RunAll(cfg))
	if len(failed) != 1 {
		t.Fatalf("expected 1 failed check, got %d", len(failed))
	}
	if failed[0].Name != "Segment bindings" {
		t.Fatalf("unexpected failed check: %s", failed[0].Name)
	}
}
