package config

import (
	"fmt"

	"segbake/internal/sevenseg"
	"segbake/internal/timing"
	"segbake/internal/transform"
)

// Validate ensures the configuration is usable. Segment bindings are not
// required here: commands that need a full display check completeness
// themselves, so inspection commands keep working on a partial setup.
func (c *Config) Validate() error {
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	if err := c.validateCount(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if _, err := transform.ParseMode(c.Display.Mode); err != nil {
		return fmt.Errorf("display.mode: %w", err)
	}
	targets := map[string][]float64{
		"display.on_local_rotation":   c.Display.OnLocalRotation,
		"display.off_local_rotation":  c.Display.OffLocalRotation,
		"display.on_global_rotation":  c.Display.OnGlobalRotation,
		"display.off_global_rotation": c.Display.OffGlobalRotation,
		"display.on_local_location":   c.Display.OnLocalLocation,
		"display.off_local_location":  c.Display.OffLocalLocation,
		"display.on_global_location":  c.Display.OnGlobalLocation,
		"display.off_global_location": c.Display.OffGlobalLocation,
		"display.on_scale":            c.Display.OnScale,
		"display.off_scale":           c.Display.OffScale,
	}
	for key, values := range targets {
		if len(values) != 3 {
			return fmt.Errorf("%s must list exactly 3 values, got %d", key, len(values))
		}
	}
	for _, axis := range c.Display.AnimateAxes {
		switch axis {
		case "x", "y", "z":
		default:
			return fmt.Errorf("display.animate_axes entry %q must be x, y, or z", axis)
		}
	}
	return nil
}

func (c *Config) validateTiming() error {
	if _, err := timing.ParseUnit(c.Timing.Unit); err != nil {
		return fmt.Errorf("timing.unit: %w", err)
	}
	return nil
}

func (c *Config) validateCount() error {
	if _, err := sevenseg.ParseCountMode(c.Count.Mode); err != nil {
		return fmt.Errorf("count.mode: %w", err)
	}
	return nil
}
