// Package timing resolves the configured animation speed into whole-frame
// spans. A digit occupies a hold span (the full period it stays visible) and
// the leading portion of each hold is the transition span during which
// segments change state; the remaining flat hold is implicit and never
// stored. Speeds may be configured in frames or in seconds, and seconds are
// converted with the scene frame rate before truncation to whole frames.
package timing
