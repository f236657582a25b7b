package timeline

import (
	"errors"
	"fmt"
	"log/slog"

	"segbake/internal/logging"
	"segbake/internal/sevenseg"
	"segbake/internal/spatial"
	"segbake/internal/timing"
	"segbake/internal/transform"
)

// Drivable is the slice of an animated object the compiler needs. It is
// satisfied by *scene.Object.
type Drivable interface {
	ChannelVec(dataPath string) (spatial.Vec3, error)
	SetChannelVec(dataPath string, v spatial.Vec3) error
	InsertKeyframe(dataPath string, frame int) error
	ParentWorldInverse() (*spatial.Mat4, error)
	ForceRotationXYZ()
	MarkCurveCyclic(dataPath string, axis int) bool
	CurveEndpoints(dataPath string, axis int) (first, last float64, ok bool)
}

// Slots binds each segment position to its drivable target. Nil entries are
// unbound and are skipped at every step.
type Slots [sevenseg.SegmentCount]Drivable

// Options configures one compilation run.
type Options struct {
	Sequence   []sevenseg.Digit
	Cyclic     bool
	Spans      timing.Spans
	Resolver   *transform.Resolver
	StartFrame int
	Slots      Slots
	Logger     *slog.Logger
}

// Event records one per-axis keyframe write in emission order.
type Event struct {
	Segment sevenseg.Segment `json:"segment"`
	Axis    int              `json:"axis"`
	Frame   int              `json:"frame"`
	Value   float64          `json:"value"`
}

// SeamIssue reports a curve whose first and last values diverge beyond the
// loop tolerance after cyclic closure.
type SeamIssue struct {
	Segment sevenseg.Segment `json:"segment"`
	Axis    int              `json:"axis"`
	First   float64          `json:"first"`
	Last    float64          `json:"last"`
}

// Result summarizes a compilation run.
type Result struct {
	DigitsProcessed int         `json:"digits_processed"`
	Cyclic          bool        `json:"cyclic"`
	Events          []Event     `json:"events,omitempty"`
	CurvesMarked    int         `json:"curves_marked"`
	SeamIssues      []SeamIssue `json:"seam_issues,omitempty"`
}

// ErrEmptySequence is returned when compiling a zero-length digit sequence.
var ErrEmptySequence = errors.New("timeline: empty digit sequence")

type compiler struct {
	opts     Options
	log      *slog.Logger
	dataPath string
	rotation bool
	global   bool

	current  int
	anchored bool
	events   []Event
	written  map[eventKey]int
}

type eventKey struct {
	seg   sevenseg.Segment
	axis  int
	frame int
}

// Compile runs the timeline compiler over the bound slots. The scene
// playhead is never consulted; all keyframes are placed by explicit frame
// numbers.
func Compile(opts Options) (*Result, error) {
	if len(opts.Sequence) == 0 {
		return nil, ErrEmptySequence
	}
	if opts.Resolver == nil {
		return nil, errors.New("timeline: resolver is required")
	}
	if opts.Spans.Hold < 1 || opts.Spans.Transition < 0 || opts.Spans.Transition > opts.Spans.Hold {
		return nil, fmt.Errorf("timeline: invalid spans hold=%d transition=%d", opts.Spans.Hold, opts.Spans.Transition)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	mode := opts.Resolver.Mode()
	c := &compiler{
		opts:     opts,
		log:      opts.Logger,
		dataPath: mode.DataPath(),
		rotation: mode.IsRotation(),
		global:   mode.IsGlobal(),
		current:  opts.StartFrame,
		written:  make(map[eventKey]int),
	}

	c.preRoll()
	c.firstDigit()
	for _, digit := range opts.Sequence[1:] {
		c.step(digit)
	}

	result := &Result{
		DigitsProcessed: len(opts.Sequence),
		Cyclic:          opts.Cyclic,
	}
	if opts.Cyclic {
		c.step(opts.Sequence[0])
		result.SeamIssues = c.checkSeams()
		result.CurvesMarked = c.markCurves()
	}
	result.Events = c.events
	return result, nil
}

// preRoll poses every segment for the first digit without keyframing, so
// the anchor keys record the correct starting values.
func (c *compiler) preRoll() {
	pattern := sevenseg.PatternOf(c.opts.Sequence[0])
	c.eachSlot(func(seg sevenseg.Segment, target Drivable) {
		if err := c.apply(target, pattern.On(seg)); err != nil {
			c.skip(seg, "initial pose", err)
		}
	})
}

// firstDigit anchors the opening hold with two identical keys: one at the
// start frame and one at the end of the flat hold, where the first
// transition will begin.
func (c *compiler) firstDigit() {
	first := c.current
	holdEnd := c.current + c.opts.Spans.FlatHold()
	c.eachSlot(func(seg sevenseg.Segment, target Drivable) {
		if err := c.keyframe(seg, target, first); err != nil {
			c.skip(seg, "opening hold", err)
			return
		}
		if holdEnd != first {
			if err := c.keyframe(seg, target, holdEnd); err != nil {
				c.skip(seg, "opening hold", err)
			}
		}
	})
	c.current = holdEnd
	c.anchored = true
}

// step advances the timeline by one hold period, transitioning every bound
// segment to the given digit's pattern. Unless the previous step already
// left a key at the transition start, current values are re-anchored there
// first. A failing segment is skipped for this step only.
func (c *compiler) step(digit sevenseg.Digit) {
	pattern := sevenseg.PatternOf(digit)
	transitionStart := c.current
	transitionEnd := transitionStart + c.opts.Spans.Transition

	c.eachSlot(func(seg sevenseg.Segment, target Drivable) {
		// With a zero-length transition the anchor would land on the
		// same frame as the target key and be overwritten immediately.
		if !c.anchored && transitionEnd != transitionStart {
			if err := c.keyframe(seg, target, transitionStart); err != nil {
				c.skip(seg, "anchor", err)
				return
			}
		}
		if err := c.apply(target, pattern.On(seg)); err != nil {
			c.skip(seg, "transition", err)
			return
		}
		if err := c.keyframe(seg, target, transitionEnd); err != nil {
			c.skip(seg, "transition", err)
		}
	})

	c.anchored = false
	c.current = transitionStart + c.opts.Spans.Hold
}

// apply resolves and writes the channel value for one segment state.
func (c *compiler) apply(target Drivable, on bool) error {
	current, err := target.ChannelVec(c.dataPath)
	if err != nil {
		return err
	}
	st := transform.State{Current: current}
	if c.global {
		inv, err := target.ParentWorldInverse()
		if err != nil {
			return err
		}
		st.ParentInverse = inv
	}
	if c.rotation {
		target.ForceRotationXYZ()
	}
	return target.SetChannelVec(c.dataPath, c.opts.Resolver.Resolve(on, st))
}

// keyframe inserts a key at the frame and records the written values as
// events, one per channel axis. Re-keying an occupied frame updates the
// recorded event in place, mirroring the replace semantics of the curve.
func (c *compiler) keyframe(seg sevenseg.Segment, target Drivable, frame int) error {
	if err := target.InsertKeyframe(c.dataPath, frame); err != nil {
		return err
	}
	v, err := target.ChannelVec(c.dataPath)
	if err != nil {
		return err
	}
	for axis := 0; axis < 3; axis++ {
		key := eventKey{seg: seg, axis: axis, frame: frame}
		if idx, ok := c.written[key]; ok {
			c.events[idx].Value = v.Component(axis)
			continue
		}
		c.written[key] = len(c.events)
		c.events = append(c.events, Event{
			Segment: seg,
			Axis:    axis,
			Frame:   frame,
			Value:   v.Component(axis),
		})
	}
	return nil
}

// eachSlot visits the bound slots in canonical A..G order.
func (c *compiler) eachSlot(fn func(seg sevenseg.Segment, target Drivable)) {
	for i, target := range c.opts.Slots {
		if target == nil {
			continue
		}
		fn(sevenseg.Segment(i), target)
	}
}

func (c *compiler) skip(seg sevenseg.Segment, phase string, err error) {
	c.log.Warn("segment skipped for this step",
		logging.String("segment", seg.String()),
		logging.String("phase", phase),
		logging.Error(err),
	)
}
