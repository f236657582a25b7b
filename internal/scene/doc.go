// Package scene models the animated scene graph the baker drives: objects
// with local transforms and parent links, actions holding per-channel
// fcurves, and the keyframe insertion semantics the timeline compiler
// relies on. The model matches the host conventions the project files are
// exchanged with: inserting a keyframe records the current values of all
// three channel components without moving the playhead, and inserting at
// an occupied frame replaces the stored value.
//
// Actions are reference counted so linked duplicates can share one curve
// container. EnsureOwnAction implements the ownership rule for baking:
// every object must hold a private action before any curve is written, and
// InsertKeyframe refuses to write through a shared one.
package scene
