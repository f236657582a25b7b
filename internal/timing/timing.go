package timing

import "fmt"

// Unit is the measure the configured speeds are expressed in.
type Unit string

const (
	// UnitFrames interprets speeds as frame counts directly.
	UnitFrames Unit = "frames"
	// UnitSeconds interprets speeds as seconds, scaled by the scene fps.
	UnitSeconds Unit = "seconds"
)

// ParseUnit maps a configuration string to a Unit.
func ParseUnit(value string) (Unit, error) {
	switch Unit(value) {
	case UnitFrames, UnitSeconds:
		return Unit(value), nil
	default:
		return "", fmt.Errorf("timing: unknown unit %q (expected frames or seconds)", value)
	}
}

// Config holds the user-facing timing knobs. Speed is the full per-digit
// period; SwitchingSpeed is the transition portion at the start of each
// period during which segment values change.
type Config struct {
	Unit           Unit
	Speed          float64
	SwitchingSpeed float64
}

// Spans is the resolved whole-frame timing. Transition never exceeds Hold;
// equal values mean the digit spends its entire period transitioning.
type Spans struct {
	Hold       int
	Transition int
}

// FlatHold returns the steady portion of the period, after the transition.
func (s Spans) FlatHold() int {
	return s.Hold - s.Transition
}

// Resolve converts the configured speeds to whole frames at the given frame
// rate. Fractional frames truncate toward zero, matching keyframe grid
// placement. A resolved hold below one frame, a negative transition, or a
// transition longer than the hold cannot produce a monotonic timeline and
// is rejected.
func (c Config) Resolve(fps int) (Spans, error) {
	if fps < 1 {
		return Spans{}, fmt.Errorf("timing: fps must be positive, got %d", fps)
	}
	hold := c.Speed
	transition := c.SwitchingSpeed
	switch c.Unit {
	case UnitFrames:
	case UnitSeconds:
		hold *= float64(fps)
		transition *= float64(fps)
	default:
		return Spans{}, fmt.Errorf("timing: unknown unit %q", c.Unit)
	}
	spans := Spans{Hold: int(hold), Transition: int(transition)}
	if spans.Hold < 1 {
		return Spans{}, fmt.Errorf("timing: speed resolves to %d frames, need at least 1", spans.Hold)
	}
	if spans.Transition < 0 {
		return Spans{}, fmt.Errorf("timing: switching speed resolves to %d frames, cannot be negative", spans.Transition)
	}
	if spans.Transition > spans.Hold {
		return Spans{}, fmt.Errorf("timing: switching span (%d frames) exceeds hold span (%d frames)", spans.Transition, spans.Hold)
	}
	return spans, nil
}
