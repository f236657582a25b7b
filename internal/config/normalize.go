package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDisplay()
	c.normalizeTiming()
	c.normalizeCount()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.Project = strings.TrimSpace(c.Paths.Project)
	if c.Paths.Project == "" || c.Paths.Project == defaultProjectPath {
		// SEGBAKE_PROJECT steers the project path until a config file
		// pins one.
		if value := strings.TrimSpace(os.Getenv("SEGBAKE_PROJECT")); value != "" {
			c.Paths.Project = value
		}
	}
	if c.Paths.Project == "" {
		c.Paths.Project = defaultProjectPath
	}
	if c.Paths.Project, err = expandPath(c.Paths.Project); err != nil {
		return fmt.Errorf("paths.project: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDisplay() {
	c.Display.Mode = strings.ToLower(strings.TrimSpace(c.Display.Mode))
	if c.Display.Mode == "" {
		c.Display.Mode = defaultTransformMode
	}
	c.Display.Segments.A = strings.TrimSpace(c.Display.Segments.A)
	c.Display.Segments.B = strings.TrimSpace(c.Display.Segments.B)
	c.Display.Segments.C = strings.TrimSpace(c.Display.Segments.C)
	c.Display.Segments.D = strings.TrimSpace(c.Display.Segments.D)
	c.Display.Segments.E = strings.TrimSpace(c.Display.Segments.E)
	c.Display.Segments.F = strings.TrimSpace(c.Display.Segments.F)
	c.Display.Segments.G = strings.TrimSpace(c.Display.Segments.G)

	if len(c.Display.AnimateAxes) > 0 {
		axes := make([]string, 0, len(c.Display.AnimateAxes))
		seen := make(map[string]struct{}, 3)
		for _, axis := range c.Display.AnimateAxes {
			normalized := strings.ToLower(strings.TrimSpace(axis))
			if normalized == "" {
				continue
			}
			if _, dup := seen[normalized]; dup {
				continue
			}
			seen[normalized] = struct{}{}
			axes = append(axes, normalized)
		}
		c.Display.AnimateAxes = axes
	}
}

// normalizeTiming clamps the speeds to the ranges the animation properties
// accepted: the period never drops below a tenth of a unit and the
// transition never goes negative.
func (c *Config) normalizeTiming() {
	c.Timing.Unit = strings.ToLower(strings.TrimSpace(c.Timing.Unit))
	if c.Timing.Unit == "" {
		c.Timing.Unit = defaultTimeUnit
	}
	if c.Timing.Speed < minSpeed {
		c.Timing.Speed = minSpeed
	}
	if c.Timing.SwitchingSpeed < 0 {
		c.Timing.SwitchingSpeed = 0
	}
}

// normalizeCount clamps the range endpoints to single digits.
func (c *Config) normalizeCount() {
	c.Count.Mode = strings.ToLower(strings.TrimSpace(c.Count.Mode))
	if c.Count.Mode == "" {
		c.Count.Mode = defaultCountMode
	}
	c.Count.From = clampDigit(c.Count.From)
	c.Count.To = clampDigit(c.Count.To)
}

func clampDigit(d int) int {
	if d < 0 {
		return 0
	}
	if d > 9 {
		return 9
	}
	return d
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
