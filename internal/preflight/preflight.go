package preflight

import (
	"fmt"
	"path/filepath"
	"strings"

	"segbake/internal/config"
	"segbake/internal/scene"
	"segbake/internal/sevenseg"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Failed returns the subset of results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// RunAll executes the config-level preflight checks.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDirectoryAccess("Project directory", filepath.Dir(cfg.Paths.Project)))
	results = append(results, CheckProjectFile(cfg.Paths.Project))
	results = append(results, CheckSegmentBindings(cfg))
	results = append(results, CheckTiming(cfg))

	return results
}

// CheckSegmentBindings verifies that every display position names a scene
// object.
func CheckSegmentBindings(cfg *config.Config) Result {
	const name = "Segment bindings"

	bindings := cfg.SegmentBindings()
	var missing []string
	for i, objectName := range bindings {
		if strings.TrimSpace(objectName) == "" {
			missing = append(missing, sevenseg.Segment(i).String())
		}
	}
	if len(missing) > 0 {
		return Result{Name: name, Detail: fmt.Sprintf("unbound positions: %s", strings.Join(missing, ", "))}
	}
	return Result{Name: name, Passed: true, Detail: "all seven positions bound"}
}

// CheckTiming verifies that the configured speeds resolve to at least one
// whole frame per digit at the default frame rate. The bake resolves against
// the stored scene's own rate; this catches configs that cannot work at any
// realistic rate.
func CheckTiming(cfg *config.Config) Result {
	const name = "Timing"

	tc, err := cfg.TimingConfig()
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	spans, err := tc.Resolve(scene.DefaultFPS)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%d frame hold, %d frame transition at %d fps", spans.Hold, spans.Transition, scene.DefaultFPS),
	}
}
