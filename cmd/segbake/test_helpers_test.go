package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir     string
	configPath  string
	projectPath string
	rigPath     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SEGBAKE_PROJECT", "")

	env := &cliTestEnv{
		baseDir:     base,
		configPath:  filepath.Join(base, "config.toml"),
		projectPath: filepath.Join(base, "project", "segbake.db"),
		rigPath:     filepath.Join(base, "rig.yaml"),
	}
	writeTestConfig(t, env.configPath, env.projectPath, filepath.Join(base, "logs"), sampleSegmentBindings)
	return env
}

// sampleSegmentBindings matches the object names in the embedded sample rig.
const sampleSegmentBindings = `a = "SegTop"
b = "SegTopRight"
c = "SegBottomRight"
d = "SegBottom"
e = "SegBottomLeft"
f = "SegTopLeft"
g = "SegMiddle"`

func writeTestConfig(t *testing.T, path, projectPath, logDir, bindings string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
project = %q
log_dir = %q

[display]
mode = "local_rotation"
on_local_rotation = [180.0, 0.0, 0.0]
off_local_rotation = [0.0, 0.0, 0.0]

[display.segments]
%s

[timing]
unit = "frames"
speed = 24.0
switching_speed = 5.0

[count]
mode = "up"
cyclic = true

[logging]
format = "console"
level = "warn"
`, projectPath, logDir, bindings)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// importSampleRig writes the embedded sample rig and imports it into the
// environment's project.
func importSampleRig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	if _, _, err := runCLI(t, []string{"rig", "init", "--path", env.rigPath}, env.configPath); err != nil {
		t.Fatalf("rig init: %v", err)
	}
	if _, _, err := runCLI(t, []string{"rig", "import", env.rigPath}, env.configPath); err != nil {
		t.Fatalf("rig import: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
