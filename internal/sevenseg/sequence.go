package sevenseg

import "fmt"

// CountMode selects how the digit sequence is built.
type CountMode string

const (
	// CountUp counts 0 through 9.
	CountUp CountMode = "up"
	// CountDown counts 9 through 0.
	CountDown CountMode = "down"
	// CountFromTo counts an explicit inclusive range in either direction.
	CountFromTo CountMode = "from_to"
)

// ParseCountMode maps a configuration string to a CountMode.
func ParseCountMode(value string) (CountMode, error) {
	switch CountMode(value) {
	case CountUp, CountDown, CountFromTo:
		return CountMode(value), nil
	default:
		return "", fmt.Errorf("sevenseg: unknown count mode %q (expected up, down, or from_to)", value)
	}
}

// CountSpec describes the digit sequence to animate. From and To are only
// consulted for CountFromTo. Cyclic is only consulted for CountFromTo;
// up and down counts always wrap.
type CountSpec struct {
	Mode   CountMode
	From   Digit
	To     Digit
	Cyclic bool
}

// Validate reports whether the spec can produce a sequence. Configuration
// loading clamps From/To into range before building a spec, so failures here
// indicate a programming error rather than bad user input.
func (s CountSpec) Validate() error {
	switch s.Mode {
	case CountUp, CountDown:
		return nil
	case CountFromTo:
		if !s.From.Valid() {
			return fmt.Errorf("sevenseg: count start %d outside 0-9", s.From)
		}
		if !s.To.Valid() {
			return fmt.Errorf("sevenseg: count end %d outside 0-9", s.To)
		}
		return nil
	default:
		return fmt.Errorf("sevenseg: unknown count mode %q", s.Mode)
	}
}

// IsCyclic reports whether the compiled timeline should wrap back to the
// first digit and repeat forever.
func (s CountSpec) IsCyclic() bool {
	if s.Mode == CountFromTo {
		return s.Cyclic
	}
	return true
}

// Sequence expands the spec into the ordered digits to animate. The result
// is never empty for a valid spec: a range with From == To yields exactly
// one digit, and a descending range walks downward inclusively.
func (s CountSpec) Sequence() []Digit {
	switch s.Mode {
	case CountDown:
		return span(9, 0)
	case CountFromTo:
		return span(s.From, s.To)
	default:
		return span(0, 9)
	}
}

func span(from, to Digit) []Digit {
	step := Digit(1)
	if from > to {
		step = -1
	}
	digits := make([]Digit, 0, 10)
	for d := from; ; d += step {
		digits = append(digits, d)
		if d == to {
			break
		}
	}
	return digits
}
