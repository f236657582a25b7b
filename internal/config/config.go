package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"segbake/internal/sevenseg"
	"segbake/internal/spatial"
	"segbake/internal/timing"
	"segbake/internal/transform"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	Project string `toml:"project"`
	LogDir  string `toml:"log_dir"`
}

// Segments binds the seven display positions to scene object names.
type Segments struct {
	A string `toml:"a"`
	B string `toml:"b"`
	C string `toml:"c"`
	D string `toml:"d"`
	E string `toml:"e"`
	F string `toml:"f"`
	G string `toml:"g"`
}

// Display contains the segment bindings, the active transform mode, and
// the on/off target values for every mode. Rotation targets are degrees.
// All five target pairs are stored; display.mode selects the active one.
type Display struct {
	Mode        string   `toml:"mode"`
	Segments    Segments `toml:"segments"`
	AnimateAxes []string `toml:"animate_axes"`

	OnLocalRotation   []float64 `toml:"on_local_rotation"`
	OffLocalRotation  []float64 `toml:"off_local_rotation"`
	OnGlobalRotation  []float64 `toml:"on_global_rotation"`
	OffGlobalRotation []float64 `toml:"off_global_rotation"`
	OnLocalLocation   []float64 `toml:"on_local_location"`
	OffLocalLocation  []float64 `toml:"off_local_location"`
	OnGlobalLocation  []float64 `toml:"on_global_location"`
	OffGlobalLocation []float64 `toml:"off_global_location"`
	OnScale           []float64 `toml:"on_scale"`
	OffScale          []float64 `toml:"off_scale"`
}

// Timing contains the digit period and transition settings.
type Timing struct {
	Unit           string  `toml:"unit"`
	Speed          float64 `toml:"speed"`
	SwitchingSpeed float64 `toml:"switching_speed"`
}

// Count contains the digit sequence settings.
type Count struct {
	Mode   string `toml:"mode"`
	From   int    `toml:"from"`
	To     int    `toml:"to"`
	Cyclic bool   `toml:"cyclic"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for segbake.
//
// Configuration sections:
//   - Paths: project database and log directory
//   - Display: segment bindings, transform mode, on/off targets
//   - Timing: digit period and transition duration
//   - Count: sequence mode, range, and looping
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Display Display `toml:"display"`
	Timing  Timing  `toml:"timing"`
	Count   Count   `toml:"count"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/segbake/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and all values clamped to their
// accepted ranges.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("segbake.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories commands write into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, filepath.Dir(c.Paths.Project)}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// TransformMode returns the active transform mode.
func (c *Config) TransformMode() (transform.Mode, error) {
	return transform.ParseMode(c.Display.Mode)
}

// TargetsFor returns the on/off pair for a mode, with rotation values
// converted from the configured degrees to radians.
func (c *Config) TargetsFor(mode transform.Mode) (transform.TargetPair, error) {
	var pair transform.TargetPair
	switch mode {
	case transform.LocalRotation:
		pair = targetPair(c.Display.OnLocalRotation, c.Display.OffLocalRotation)
	case transform.GlobalRotation:
		pair = targetPair(c.Display.OnGlobalRotation, c.Display.OffGlobalRotation)
	case transform.LocalLocation:
		return targetPair(c.Display.OnLocalLocation, c.Display.OffLocalLocation), nil
	case transform.GlobalLocation:
		return targetPair(c.Display.OnGlobalLocation, c.Display.OffGlobalLocation), nil
	case transform.Scale:
		return targetPair(c.Display.OnScale, c.Display.OffScale), nil
	default:
		return transform.TargetPair{}, fmt.Errorf("config: unknown transform mode %q", mode)
	}
	pair.On = spatial.RadiansVec(pair.On)
	pair.Off = spatial.RadiansVec(pair.Off)
	return pair, nil
}

func targetPair(on, off []float64) transform.TargetPair {
	return transform.TargetPair{On: vecFrom(on), Off: vecFrom(off)}
}

func vecFrom(values []float64) spatial.Vec3 {
	var v spatial.Vec3
	for i := 0; i < len(values) && i < 3; i++ {
		v.SetComponent(i, values[i])
	}
	return v
}

// AxisOverride returns an explicit per-axis policy when display.animate_axes
// is set. Listed axes animate; the rest preserve the object's current value.
func (c *Config) AxisOverride() ([3]transform.AxisPolicy, bool) {
	if len(c.Display.AnimateAxes) == 0 {
		return [3]transform.AxisPolicy{}, false
	}
	policy := [3]transform.AxisPolicy{
		transform.Preserve, transform.Preserve, transform.Preserve,
	}
	for _, axis := range c.Display.AnimateAxes {
		switch axis {
		case "x":
			policy[0] = transform.Animate
		case "y":
			policy[1] = transform.Animate
		case "z":
			policy[2] = transform.Animate
		}
	}
	return policy, true
}

// SegmentBindings returns the configured object names indexed by segment.
// Unbound positions are empty strings.
func (c *Config) SegmentBindings() [sevenseg.SegmentCount]string {
	return [sevenseg.SegmentCount]string{
		c.Display.Segments.A,
		c.Display.Segments.B,
		c.Display.Segments.C,
		c.Display.Segments.D,
		c.Display.Segments.E,
		c.Display.Segments.F,
		c.Display.Segments.G,
	}
}

// CountSpec returns the digit sequence settings as a domain value.
func (c *Config) CountSpec() (sevenseg.CountSpec, error) {
	mode, err := sevenseg.ParseCountMode(c.Count.Mode)
	if err != nil {
		return sevenseg.CountSpec{}, err
	}
	return sevenseg.CountSpec{
		Mode:   mode,
		From:   sevenseg.Digit(c.Count.From),
		To:     sevenseg.Digit(c.Count.To),
		Cyclic: c.Count.Cyclic,
	}, nil
}

// TimingConfig returns the timing settings as a domain value.
func (c *Config) TimingConfig() (timing.Config, error) {
	unit, err := timing.ParseUnit(c.Timing.Unit)
	if err != nil {
		return timing.Config{}, err
	}
	return timing.Config{
		Unit:           unit,
		Speed:          c.Timing.Speed,
		SwitchingSpeed: c.Timing.SwitchingSpeed,
	}, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
