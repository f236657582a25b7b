package transform

import "segbake/internal/spatial"

// TargetPair holds the channel values for the two segment states. Rotation
// targets are radians.
type TargetPair struct {
	On  spatial.Vec3
	Off spatial.Vec3
}

// AxisPolicy decides what happens to one channel axis on every write.
type AxisPolicy int

const (
	// Animate writes the target value for the axis.
	Animate AxisPolicy = iota
	// Preserve keeps the segment's current value for the axis.
	Preserve
)

// String returns "animate" or "preserve".
func (p AxisPolicy) String() string {
	if p == Preserve {
		return "preserve"
	}
	return "animate"
}

// DerivePolicy computes the per-axis policy for a mode and target pair.
// Only local rotation preserves anything: X always animates, and Y or Z is
// preserved when both targets leave that axis at exactly zero. All other
// modes animate every axis.
func DerivePolicy(mode Mode, targets TargetPair) [3]AxisPolicy {
	var policy [3]AxisPolicy
	if mode != LocalRotation {
		return policy
	}
	for axis := 1; axis < 3; axis++ {
		if targets.On.Component(axis) == 0 && targets.Off.Component(axis) == 0 {
			policy[axis] = Preserve
		}
	}
	return policy
}

// State is the per-segment input to a resolution: the channel's current
// value and, for global modes, the inverse of the parent's world transform.
// ParentInverse is nil for unparented segments.
type State struct {
	Current       spatial.Vec3
	ParentInverse *spatial.Mat4
}

// Resolver turns an on/off state into the channel value to write. Build one
// per bake; Resolve is pure and safe to call for every segment and step.
type Resolver struct {
	mode    Mode
	targets TargetPair
	policy  [3]AxisPolicy
}

// NewResolver builds a resolver with the policy derived from the targets.
func NewResolver(mode Mode, targets TargetPair) *Resolver {
	return NewResolverWithPolicy(mode, targets, DerivePolicy(mode, targets))
}

// NewResolverWithPolicy builds a resolver with an explicit per-axis policy,
// overriding the zero-target inference. Only local rotation consults the
// policy.
func NewResolverWithPolicy(mode Mode, targets TargetPair, policy [3]AxisPolicy) *Resolver {
	return &Resolver{mode: mode, targets: targets, policy: policy}
}

// Mode returns the transform mode the resolver was built for.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Policy returns the per-axis policy in effect.
func (r *Resolver) Policy() [3]AxisPolicy {
	return r.policy
}

// Resolve computes the channel value for the given segment state.
func (r *Resolver) Resolve(on bool, st State) spatial.Vec3 {
	target := r.targets.Off
	if on {
		target = r.targets.On
	}

	switch r.mode {
	case LocalRotation:
		out := st.Current
		for axis := 0; axis < 3; axis++ {
			if r.policy[axis] == Animate {
				out.SetComponent(axis, target.Component(axis))
			}
		}
		return out
	case GlobalRotation:
		if st.ParentInverse == nil {
			return target
		}
		local := st.ParentInverse.Mul(spatial.EulerFromVec3(target).Mat4())
		return local.EulerXYZ().Vec3()
	case GlobalLocation:
		if st.ParentInverse == nil {
			return target
		}
		return st.ParentInverse.TransformPoint(target)
	default:
		return target
	}
}
