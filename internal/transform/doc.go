// Package transform maps segment on/off states to channel values for the
// configured transform mode. A Resolver is built once per bake from the
// mode and its on/off target pair; resolving a state is then a pure
// computation over the segment's current channel value and, for global
// modes, the inverse of its parent's world transform.
//
// Local rotation carries a per-axis policy decided at construction time:
// the X axis always animates, while Y and Z animate only when either
// configured target uses them. Rigs commonly hold a fixed base orientation
// on those axes (a segment rotated -90 on Y to face the camera), and a
// zero target would otherwise stomp it on every keyframe.
package transform
