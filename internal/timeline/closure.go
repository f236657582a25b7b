package timeline

import (
	"math"

	"segbake/internal/logging"
	"segbake/internal/sevenseg"
)

// seamTolerance is the maximum first/last value difference a curve may
// carry and still loop without a visible pop.
const seamTolerance = 1e-4

// checkSeams compares the first and last keyframe values on every touched
// curve after the wrap transition. Mismatches usually mean the curve held
// keyframes from an earlier animation before this run. The check is
// advisory: issues are logged and reported, never fatal.
func (c *compiler) checkSeams() []SeamIssue {
	var issues []SeamIssue
	c.eachSlot(func(seg sevenseg.Segment, target Drivable) {
		for axis := 0; axis < 3; axis++ {
			first, last, ok := target.CurveEndpoints(c.dataPath, axis)
			if !ok {
				continue
			}
			if math.Abs(first-last) < seamTolerance {
				continue
			}
			issues = append(issues, SeamIssue{Segment: seg, Axis: axis, First: first, Last: last})
			c.log.Warn("loop seam mismatch",
				logging.String("segment", seg.String()),
				logging.Int("axis", axis),
				logging.Float64("first", first),
				logging.Float64("last", last),
			)
		}
	})
	return issues
}

// markCurves flags every touched curve for repeat-after-end playback.
// Marking is idempotent, so re-baking a project never stacks modifiers.
func (c *compiler) markCurves() int {
	marked := 0
	c.eachSlot(func(seg sevenseg.Segment, target Drivable) {
		for axis := 0; axis < 3; axis++ {
			if target.MarkCurveCyclic(c.dataPath, axis) {
				marked++
			}
		}
	})
	return marked
}
