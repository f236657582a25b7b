// Package timeline compiles a digit sequence into keyframes on the bound
// segment channels. The compiler walks the sequence one hold period at a
// time: the first digit is posed before any keyframe exists, anchored with
// two identical keys spanning its flat hold, and every later digit gets an
// anchor key at its transition start (re-keying the previous values) plus a
// target key at the transition end. Frames only ever move forward, so each
// curve receives its keyframes in strictly non-decreasing frame order.
//
// Cyclic sequences close the loop with one more transition from the last
// digit back to the first, then mark every touched curve for repeat-after-
// end playback. A diagnostic pass compares each curve's first and last
// values; mismatches (typically keyframes left over from earlier animation)
// are reported as seam issues but never fail the run.
//
// Segments are driven through the Drivable interface so the compiler never
// touches scene internals. A failing segment is logged and skipped for the
// current step only; the remaining segments keep their timing.
package timeline
