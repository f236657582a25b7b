package bake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"segbake/internal/config"
	"segbake/internal/display"
	"segbake/internal/logging"
	"segbake/internal/preflight"
	"segbake/internal/project"
	"segbake/internal/scene"
	"segbake/internal/textutil"
	"segbake/internal/timeline"
)

// ActionPrefix names the actions the bake creates. An object named SegTop
// gets an action named SegBake_SegTop.
const ActionPrefix = "SegBake"

var (
	// ErrPreflight is returned when readiness checks fail before the bake.
	ErrPreflight = errors.New("bake: preflight checks failed")
	// ErrProjectLocked is returned when another bake holds the project lock.
	ErrProjectLocked = errors.New("bake: another bake holds the project lock")
)

// Summary reports one completed bake.
type Summary struct {
	RunID            string               `json:"run_id"`
	Mode             string               `json:"mode"`
	DigitsProcessed  int                  `json:"digits_processed"`
	Cyclic           bool                 `json:"cyclic"`
	FPS              int                  `json:"fps"`
	StartFrame       int                  `json:"start_frame"`
	LastKeyFrame     int                  `json:"last_key_frame"`
	HoldFrames       int                  `json:"hold_frames"`
	TransitionFrames int                  `json:"transition_frames"`
	Events           int                  `json:"events"`
	CurvesMarked     int                  `json:"curves_marked"`
	SeamIssues       []timeline.SeamIssue `json:"seam_issues,omitempty"`
	ActionsCreated   int                  `json:"actions_created"`
	ActionsCopied    int                  `json:"actions_copied"`
	ActionsOwned     int                  `json:"actions_owned"`
	StartedAt        time.Time            `json:"started_at"`
	FinishedAt       time.Time            `json:"finished_at"`
}

// Orchestrator wires the stages of a bake together. One orchestrator serves
// one project database.
type Orchestrator struct {
	cfg    *config.Config
	store  *project.Store
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock
}

// New constructs an orchestrator with initialized dependencies.
func New(cfg *config.Config, store *project.Store, logger *slog.Logger) (*Orchestrator, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("bake requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := cfg.Paths.Project + ".lock"
	return &Orchestrator{
		cfg:      cfg,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "bake"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the filesystem location of the project lock.
func (o *Orchestrator) LockPath() string {
	return o.lockPath
}

// Run performs a full bake against the stored scene and records the run.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	if failed := preflight.Failed(preflight.RunAll(o.cfg)); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, f := range failed {
			details = append(details, fmt.Sprintf("%s: %s", f.Name, f.Detail))
		}
		return nil, fmt.Errorf("%w: %s", ErrPreflight, strings.Join(details, "; "))
	}

	locked, err := o.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire project lock: %w", err)
	}
	if !locked {
		return nil, ErrProjectLocked
	}
	defer func() {
		if err := o.lock.Unlock(); err != nil {
			o.logger.Warn("failed to release project lock", logging.Error(err))
		}
	}()

	runID := uuid.NewString()
	started := time.Now().UTC()
	log := o.logger.With(logging.String("run_id", runID))

	sc, err := o.store.LoadScene(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	unit, err := display.Assemble(o.cfg, sc)
	if err != nil {
		return nil, err
	}

	countSpec, err := o.cfg.CountSpec()
	if err != nil {
		return nil, err
	}
	if err := countSpec.Validate(); err != nil {
		return nil, err
	}
	timingCfg, err := o.cfg.TimingConfig()
	if err != nil {
		return nil, err
	}
	spans, err := timingCfg.Resolve(sc.FPS)
	if err != nil {
		return nil, err
	}

	// Every segment must own its action before the first key is written.
	// Linked duplicates may share one action; splitting mid-bake would put
	// earlier keys on curves other segments still reference.
	var created, copied, owned int
	for _, obj := range unit.Objects {
		switch obj.EnsureOwnAction(ActionPrefix) {
		case scene.ActionCreated:
			created++
		case scene.ActionCopied:
			copied++
		default:
			owned++
		}
	}

	sequence := countSpec.Sequence()
	cyclic := countSpec.IsCyclic()

	log.Info("bake starting",
		logging.String("mode", string(unit.Mode)),
		logging.Int("digits", len(sequence)),
		logging.String("playback", textutil.Ternary(cyclic, "cyclic", "linear")),
		logging.Int("hold_frames", spans.Hold),
		logging.Int("transition_frames", spans.Transition),
		logging.Int("fps", sc.FPS),
	)

	result, err := timeline.Compile(timeline.Options{
		Sequence:   sequence,
		Cyclic:     cyclic,
		Spans:      spans,
		Resolver:   unit.Resolver,
		StartFrame: sc.FrameStart,
		Slots:      unit.Slots(),
		Logger:     log,
	})
	if err != nil {
		return nil, fmt.Errorf("compile timeline: %w", err)
	}

	for _, issue := range result.SeamIssues {
		log.Warn("loop seam mismatch",
			logging.String("segment", issue.Segment.String()),
			logging.Int("axis", issue.Axis),
			logging.Float64("first", issue.First),
			logging.Float64("last", issue.Last),
		)
	}

	if err := o.store.SaveScene(ctx, sc); err != nil {
		return nil, fmt.Errorf("save baked scene: %w", err)
	}

	finished := time.Now().UTC()
	summary := &Summary{
		RunID:            runID,
		Mode:             string(unit.Mode),
		DigitsProcessed:  result.DigitsProcessed,
		Cyclic:           result.Cyclic,
		FPS:              sc.FPS,
		StartFrame:       sc.FrameStart,
		LastKeyFrame:     lastEventFrame(result.Events, sc.FrameStart),
		HoldFrames:       spans.Hold,
		TransitionFrames: spans.Transition,
		Events:           len(result.Events),
		CurvesMarked:     result.CurvesMarked,
		SeamIssues:       result.SeamIssues,
		ActionsCreated:   created,
		ActionsCopied:    copied,
		ActionsOwned:     owned,
		StartedAt:        started,
		FinishedAt:       finished,
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal run summary: %w", err)
	}
	run := &project.Run{
		RunID:        runID,
		StartedAt:    started,
		FinishedAt:   &finished,
		Mode:         summary.Mode,
		Digits:       summary.DigitsProcessed,
		Cyclic:       summary.Cyclic,
		Events:       summary.Events,
		CurvesMarked: summary.CurvesMarked,
		SeamIssues:   len(summary.SeamIssues),
		SummaryJSON:  string(summaryJSON),
	}
	if err := o.store.RecordRun(ctx, run); err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}

	log.Info("bake finished",
		logging.Int("events", summary.Events),
		logging.Int("last_key_frame", summary.LastKeyFrame),
		logging.Int("curves_marked", summary.CurvesMarked),
		logging.Int("seam_issues", len(summary.SeamIssues)),
		logging.Duration("elapsed", finished.Sub(started)),
	)
	return summary, nil
}

func lastEventFrame(events []timeline.Event, fallback int) int {
	last := fallback
	for _, e := range events {
		if e.Frame > last {
			last = e.Frame
		}
	}
	return last
}
