// Package config loads, normalizes, and validates segbake configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SEGBAKE_PROJECT. The Config type centralizes every knob the CLI needs:
// project and log locations, segment bindings, transform targets, timing,
// and the count sequence. Rotation targets in the file are written in
// degrees; the domain accessors convert them to radians.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, clamped ranges, and clear validation errors.
package config
