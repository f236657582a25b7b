package display

import (
	"errors"
	"fmt"
	"strings"

	"segbake/internal/config"
	"segbake/internal/scene"
	"segbake/internal/sevenseg"
	"segbake/internal/timeline"
	"segbake/internal/transform"
)

// ErrSegmentsUnbound is returned when assembly finds segment positions
// without a usable scene object.
var ErrSegmentsUnbound = errors.New("display: segments unbound")

/// Unit is an assembled display: one scene object per segment position plus
// the resolver for the active transform mode.
type Unit struct {
	Mode     transform.Mode
	Resolver *transform.Resolver
	Objects  [sevenseg.SegmentCount]*scene.Object
}

// Assemble resolves the configured bindings against the scene. Every
// segment position must name an object present in the scene; the returned
// error lists all gaps at once so they can be fixed in one edit.
func Assemble(cfg *config.Config, sc *scene.Scene) (*Unit, error) {
	mode, err := cfg.TransformMode()
	if err != nil {
		return nil, err
	}
	targets, err := cfg.TargetsFor(mode)
	if err != nil {
		return nil, err
	}

	resolver := transform.NewResolver(mode, targets)
	if policy, ok := cfg.AxisOverride(); ok {
		resolver = transform.NewResolverWithPolicy(mode, targets, policy)
	}

	unit := &Unit{Mode: mode, Resolver: resolver}
	bindings := cfg.SegmentBindings()
	var missing []string
	for _, seg := range sevenseg.AllSegments() {
		name := bindings[seg]
		if name == "" {
			missing = append(missing, fmt.Sprintf("%s (no object configured)", strings.ToLower(seg.String())))
			continue
		}
		obj, err := sc.Object(name)
		if err != nil {
			missing = append(missing, fmt.Sprintf("%s (no object %q in scene)", strings.ToLower(seg.String()), name))
			continue
		}
		unit.Objects[seg] = obj
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSegmentsUnbound, strings.Join(missing, ", "))
	}
	return unit, nil
}

// Slots adapts the resolved objects to the compiler's slot array. A plain
// assignment would wrap nil pointers in non-nil interface values, so empty
// positions stay untouched.
func (u *Unit) Slots() timeline.Slots {
	var slots timeline.Slots
	for i, obj := range u.Objects {
		if obj != nil {
			slots[i] = obj
		}
	}
	return slots
}

// DataPath returns the animation channel the active mode writes to.
func (u *Unit) DataPath() string {
	return u.Mode.DataPath()
}
