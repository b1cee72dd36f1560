// Package timeline computes the Gantt layout of a plan: which steps belong to
// the committed plan head, how much of each bar is committed, and where every
// bar sits in pixel space. It knows nothing about documents; the view package
// turns a Layout into elements.
package timeline

import (
	"github.com/drew/planview/internal/logging"
	"github.com/drew/planview/internal/model"
)

// Section is the part of the plan a step is drawn in
type Section int

const (
	PlanHead Section = iota
	Relaxed
)

func (s Section) String() string {
	if s == PlanHead {
		return "plan-head"
	}
	return "relaxed"
}

// Predicate decides whether a step is displayed
type Predicate interface {
	ShouldDisplay(step model.PlanStep) bool
}

// PredicateFunc adapts a plain function to Predicate
type PredicateFunc func(step model.PlanStep) bool

// ShouldDisplay calls f(step)
func (f PredicateFunc) ShouldDisplay(step model.PlanStep) bool {
	return f(step)
}

// Renderer maps plans into pixel layouts for a fixed set of view options
type Renderer struct {
	opts   model.ViewOptions
	logger *logging.Logger
}

// NewRenderer creates a Renderer. Zero-valued options fall back to
// model.DefaultViewOptions; a nil logger discards anomalies.
func NewRenderer(opts model.ViewOptions, logger *logging.Logger) *Renderer {
	defaults := model.DefaultViewOptions()
	if opts.Epsilon <= 0 {
		opts.Epsilon = defaults.Epsilon
	}
	if opts.DisplayWidth <= 0 {
		opts.DisplayWidth = defaults.DisplayWidth
	}
	if opts.RowHeight <= 0 {
		opts.RowHeight = defaults.RowHeight
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Renderer{opts: opts, logger: logger}
}

// Options returns the effective view options
func (r *Renderer) Options() model.ViewOptions {
	return r.opts
}

// Classify puts a step in the plan head when no execution is in progress or
// when its end is locked in. A step whose end is committed is plan head even
// if its start is still speculative.
func Classify(step model.PlanStep, now *float64) Section {
	if now == nil {
		return PlanHead
	}
	switch step.Commitment {
	case model.Committed, model.EndsInRelaxedPlan:
		return PlanHead
	default:
		return Relaxed
	}
}

// durationOrEpsilon is the step duration, or epsilon when it has none
func (r *Renderer) durationOrEpsilon(step model.PlanStep) float64 {
	if step.Duration != nil {
		return *step.Duration
	}
	return r.opts.Epsilon
}

// CommittedDuration is how much of the step's bar lies in the committed
// region, truncated at the plan's now cursor.
func (r *Renderer) CommittedDuration(step model.PlanStep, plan *model.Plan) float64 {
	if plan == nil || plan.Now == nil {
		return r.durationOrEpsilon(step)
	}
	now := *plan.Now

	if step.EndTime() < now {
		// entirely in the past; only a committed completion counts
		if step.Commitment == model.Committed {
			return r.durationOrEpsilon(step)
		}
		return 0
	}

	if step.StartTime != nil && *step.StartTime >= now {
		return 0
	}

	// step straddles now
	switch step.Commitment {
	case model.Committed:
		return r.durationOrEpsilon(step)
	case model.EndsInRelaxedPlan:
		return 0
	case model.StartsInRelaxedPlan:
		return now - valueOr(step.StartTime, 0)
	default:
		r.logger.Warn("unexpected step commitment",
			"action", step.FullActionName(),
			"commitment", step.Commitment.String(),
			"now", now)
		return 0
	}
}

// RelaxedDuration is the speculative remainder of the step's bar
func (r *Renderer) RelaxedDuration(step model.PlanStep, committed float64) float64 {
	return r.durationOrEpsilon(step) - committed
}

// TimeToPixels scales a time to the display width. A plan without a positive
// makespan maps everything to 0.
func (r *Renderer) TimeToPixels(t float64, plan *model.Plan) float64 {
	if plan == nil || !(plan.Makespan > 0) {
		return 0
	}
	return t / plan.Makespan * r.opts.DisplayWidth
}

// WidthPixels is the bar width for a duration; bars are never narrower than 1px
func (r *Renderer) WidthPixels(d float64, plan *model.Plan) float64 {
	return max(1, r.TimeToPixels(d, plan))
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
