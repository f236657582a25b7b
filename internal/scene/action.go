package scene

import "sort"

// Keyframe is one control point on an fcurve.
type Keyframe struct {
	Frame int
	Value float64
}

// ModifierType identifies an fcurve modifier.
type ModifierType string

// ModifierCycles extends a curve beyond its keyframe range.
const ModifierCycles ModifierType = "CYCLES"

// CycleMode controls how a cycles modifier extrapolates.
type CycleMode string

const (
	// CycleNone leaves the side unextended.
	CycleNone CycleMode = "NONE"
	// CycleRepeatOffset repeats the curve, offsetting each cycle by the
	// difference between its first and last values.
	CycleRepeatOffset CycleMode = "REPEAT_OFFSET"
)

// Modifier is an fcurve modifier. Only the cycles type is modeled.
type Modifier struct {
	Type       ModifierType
	ModeBefore CycleMode
	ModeAfter  CycleMode
}

// FCurve animates one component of one channel: DataPath names the channel
// and ArrayIndex selects the component (0=X, 1=Y, 2=Z). Keyframes stay
// sorted by frame.
type FCurve struct {
	DataPath   string
	ArrayIndex int
	Keyframes  []Keyframe
	Modifiers  []Modifier
}

// Insert records value at frame, replacing any existing keyframe there.
func (c *FCurve) Insert(frame int, value float64) {
	i := sort.Search(len(c.Keyframes), func(j int) bool {
		return c.Keyframes[j].Frame >= frame
	})
	if i < len(c.Keyframes) && c.Keyframes[i].Frame == frame {
		c.Keyframes[i].Value = value
		return
	}
	c.Keyframes = append(c.Keyframes, Keyframe{})
	copy(c.Keyframes[i+1:], c.Keyframes[i:])
	c.Keyframes[i] = Keyframe{Frame: frame, Value: value}
}

// HasCycles reports whether a repeat-after-end cycles modifier is present.
func (c *FCurve) HasCycles() bool {
	for _, m := range c.Modifiers {
		if m.Type == ModifierCycles && m.ModeAfter == CycleRepeatOffset {
			return true
		}
	}
	return false
}

// EnsureCycles adds a repeat-after-end cycles modifier once. Repeated calls
// are no-ops, so re-baking a project does not stack modifiers. Reports
// whether a modifier was added.
func (c *FCurve) EnsureCycles() bool {
	if c.HasCycles() {
		return false
	}
	c.Modifiers = append(c.Modifiers, Modifier{
		Type:       ModifierCycles,
		ModeBefore: CycleNone,
		ModeAfter:  CycleRepeatOffset,
	})
	return true
}

// FirstValue returns the value of the earliest keyframe.
func (c *FCurve) FirstValue() (float64, bool) {
	if len(c.Keyframes) == 0 {
		return 0, false
	}
	return c.Keyframes[0].Value, true
}

// LastValue returns the value of the latest keyframe.
func (c *FCurve) LastValue() (float64, bool) {
	if len(c.Keyframes) == 0 {
		return 0, false
	}
	return c.Keyframes[len(c.Keyframes)-1].Value, true
}

// Action is a named container of fcurves. The user count tracks how many
// objects reference it; linked duplicates may share one action until the
// bake pre-pass splits them.
type Action struct {
	Name   string
	users  int
	Curves []*FCurve
}

// NewAction returns an empty action with no users.
func NewAction(name string) *Action {
	return &Action{Name: name}
}

// Users returns the number of objects referencing the action.
func (a *Action) Users() int {
	return a.users
}

// Curve returns the fcurve for the channel component, or nil.
func (a *Action) Curve(dataPath string, arrayIndex int) *FCurve {
	for _, c := range a.Curves {
		if c.DataPath == dataPath && c.ArrayIndex == arrayIndex {
			return c
		}
	}
	return nil
}

// EnsureCurve returns the fcurve for the channel component, creating it if
// missing.
func (a *Action) EnsureCurve(dataPath string, arrayIndex int) *FCurve {
	if c := a.Curve(dataPath, arrayIndex); c != nil {
		return c
	}
	c := &FCurve{DataPath: dataPath, ArrayIndex: arrayIndex}
	a.Curves = append(a.Curves, c)
	return c
}

// Copy deep-copies the action under a new name. The copy starts with no
// users; assigning it to an object sets the count.
func (a *Action) Copy(name string) *Action {
	out := NewAction(name)
	out.Curves = make([]*FCurve, 0, len(a.Curves))
	for _, c := range a.Curves {
		dup := &FCurve{
			DataPath:   c.DataPath,
			ArrayIndex: c.ArrayIndex,
			Keyframes:  append([]Keyframe(nil), c.Keyframes...),
			Modifiers:  append([]Modifier(nil), c.Modifiers...),
		}
		out.Curves = append(out.Curves, dup)
	}
	return out
}
