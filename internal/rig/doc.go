// Package rig loads display rig descriptions from YAML files and builds
// scenes from them.
//
// A rig file lists the objects making up a seven-segment display: each
// entry carries a name, optional parent, optional transform channels, and
// an optional shared action name so linked duplicates start out sharing
// one animation container. Rotation values in rig files are degrees;
// Build converts them to radians.
//
// The segment bindings themselves live in the configuration file, not in
// the rig: the same rig can drive different display setups.
package rig
