package scene

import (
	"fmt"

	"segbake/internal/spatial"
)

// Channel data paths in the animation system.
const (
	PathLocation      = "location"
	PathRotationEuler = "rotation_euler"
	PathScale         = "scale"
)

// RotationXYZ is the Euler order baking requires on rotation channels.
const RotationXYZ = "XYZ"

// AnimData attaches an action to an object.
type AnimData struct {
	Action *Action
}

// Object is one node of the scene graph. Rotation holds XYZ Euler angles in
// radians; RotationMode tags the order the host authored (baking forces it
// to XYZ before writing rotation channels).
type Object struct {
	Name         string
	Location     spatial.Vec3
	Rotation     spatial.Vec3
	Scale        spatial.Vec3
	RotationMode string
	Parent       *Object
	Anim         *AnimData
}

// NewObject returns an object at the origin with unit scale.
func NewObject(name string) *Object {
	return &Object{
		Name:         name,
		Scale:        spatial.Vec3{X: 1, Y: 1, Z: 1},
		RotationMode: RotationXYZ,
	}
}

// ChannelVec returns the full value of a transform channel.
func (o *Object) ChannelVec(dataPath string) (spatial.Vec3, error) {
	switch dataPath {
	case PathLocation:
		return o.Location, nil
	case PathRotationEuler:
		return o.Rotation, nil
	case PathScale:
		return o.Scale, nil
	default:
		return spatial.Vec3{}, fmt.Errorf("%w: %q", ErrUnknownChannel, dataPath)
	}
}

// SetChannelVec replaces the full value of a transform channel.
func (o *Object) SetChannelVec(dataPath string, v spatial.Vec3) error {
	switch dataPath {
	case PathLocation:
		o.Location = v
	case PathRotationEuler:
		o.Rotation = v
	case PathScale:
		o.Scale = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChannel, dataPath)
	}
	return nil
}

// ChannelValue returns one component of a transform channel.
func (o *Object) ChannelValue(dataPath string, axis int) (float64, error) {
	v, err := o.ChannelVec(dataPath)
	if err != nil {
		return 0, err
	}
	return v.Component(axis), nil
}

// SetChannelValue assigns one component of a transform channel.
func (o *Object) SetChannelValue(dataPath string, axis int, value float64) error {
	v, err := o.ChannelVec(dataPath)
	if err != nil {
		return err
	}
	v.SetComponent(axis, value)
	return o.SetChannelVec(dataPath, v)
}

// ForceRotationXYZ switches the object to the XYZ Euler order.
func (o *Object) ForceRotationXYZ() {
	o.RotationMode = RotationXYZ
}

// LocalMatrix composes the object's transform channels.
func (o *Object) LocalMatrix() spatial.Mat4 {
	return spatial.Compose(o.Location, spatial.EulerFromVec3(o.Rotation), o.Scale)
}

// WorldMatrix walks the parent chain down to this object.
func (o *Object) WorldMatrix() spatial.Mat4 {
	if o.Parent == nil {
		return o.LocalMatrix()
	}
	return o.Parent.WorldMatrix().Mul(o.LocalMatrix())
}

// AssignAction points the object at an action, adjusting user counts on
// both the old and new container. Passing nil releases the current action.
func (o *Object) AssignAction(a *Action) {
	if o.Anim == nil {
		o.Anim = &AnimData{}
	}
	if o.Anim.Action != nil {
		o.Anim.Action.users--
	}
	o.Anim.Action = a
	if a != nil {
		a.users++
	}
}

// Action returns the object's action, or nil.
func (o *Object) Action() *Action {
	if o.Anim == nil {
		return nil
	}
	return o.Anim.Action
}

// ActionOwnership reports what EnsureOwnAction had to do.
type ActionOwnership int

const (
	// ActionOwned means the object already held a private action.
	ActionOwned ActionOwnership = iota
	// ActionCreated means a fresh action was created.
	ActionCreated
	// ActionCopied means a shared action was split into a private copy.
	ActionCopied
)

// String returns "owned", "created", or "copied".
func (s ActionOwnership) String() string {
	switch s {
	case ActionCreated:
		return "created"
	case ActionCopied:
		return "copied"
	default:
		return "owned"
	}
}

// EnsureOwnAction guarantees the object holds an action no other object
// references. Objects without one get a fresh action named
// "<prefix>_<object>"; a shared action is replaced by a private deep copy
// under the same derived name, leaving the other users' curves untouched.
func (o *Object) EnsureOwnAction(prefix string) ActionOwnership {
	name := prefix + "_" + o.Name
	current := o.Action()
	switch {
	case current == nil:
		o.AssignAction(NewAction(name))
		return ActionCreated
	case current.Users() > 1:
		o.AssignAction(current.Copy(name))
		return ActionCopied
	default:
		return ActionOwned
	}
}

// ParentWorldInverse returns the inverse of the parent's world transform,
// or nil when the object is unparented.
func (o *Object) ParentWorldInverse() (*spatial.Mat4, error) {
	if o.Parent == nil {
		return nil, nil
	}
	inv, err := o.Parent.WorldMatrix().Inverted()
	if err != nil {
		return nil, fmt.Errorf("parent %q: %w", o.Parent.Name, err)
	}
	return &inv, nil
}

// MarkCurveCyclic adds a repeat-after-end modifier to the channel
// component's curve. Missing actions or curves are skipped. Reports whether
// a modifier was added.
func (o *Object) MarkCurveCyclic(dataPath string, axis int) bool {
	action := o.Action()
	if action == nil {
		return false
	}
	c := action.Curve(dataPath, axis)
	if c == nil {
		return false
	}
	return c.EnsureCycles()
}

// CurveEndpoints returns the first and last keyframe values of the channel
// component's curve. ok is false when the curve is missing or holds fewer
// than two keyframes.
func (o *Object) CurveEndpoints(dataPath string, axis int) (first, last float64, ok bool) {
	action := o.Action()
	if action == nil {
		return 0, 0, false
	}
	c := action.Curve(dataPath, axis)
	if c == nil || len(c.Keyframes) < 2 {
		return 0, 0, false
	}
	return c.Keyframes[0].Value, c.Keyframes[len(c.Keyframes)-1].Value, true
}

// InsertKeyframe records the current values of all three components of the
// channel at the given frame, replacing existing keyframes on those frames.
// The scene playhead is neither consulted nor moved. The object must own
// its action exclusively.
func (o *Object) InsertKeyframe(dataPath string, frame int) error {
	action := o.Action()
	if action == nil {
		return fmt.Errorf("%w: %s", ErrNoAction, o.Name)
	}
	if action.Users() > 1 {
		return fmt.Errorf("%w: %q has %d users", ErrSharedAction, action.Name, action.Users())
	}
	v, err := o.ChannelVec(dataPath)
	if err != nil {
		return err
	}
	for axis := 0; axis < 3; axis++ {
		action.EnsureCurve(dataPath, axis).Insert(frame, v.Component(axis))
	}
	return nil
}
