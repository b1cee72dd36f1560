package timeline

import (
	"github.com/drew/planview/internal/model"
)

// Row is one laid-out step
type Row struct {
	// Row number from the top of the canvas
	Index int
	// Position of the step in plan.Steps
	StepIndex int
	Step      model.PlanStep
	Section   Section

	Left float64
	Top  float64

	CommittedDuration float64
	RelaxedDuration   float64
	// Width of the committed bar, at least 1px
	BarWidth float64
	// Width of the continuation bar, 0 when there is nothing speculative
	RelaxedWidth float64

	Color   string
	Label   string
	Tooltip string
}

// HelpfulItem is one suggested next action in the marker
type HelpfulItem struct {
	ActionName string
	Kind       model.HappeningKind
	Glyph      string
	Label      string
}

// HelpfulMarker sits at the now cursor on its own row
type HelpfulMarker struct {
	Row   int
	Left  float64
	Top   float64
	Items []HelpfulItem
}

// Layout is the complete pixel geometry of one rendered plan
type Layout struct {
	PlanIndex int
	Width     float64
	Height    float64
	RowHeight float64
	Rows      []Row
	// nil when the plan has no helpful actions
	Helpful *HelpfulMarker
}

// PlanHeadRows returns the rows drawn above the helpful actions marker
func (l Layout) PlanHeadRows() []Row {
	var rows []Row
	for _, row := range l.Rows {
		if row.Section == PlanHead {
			rows = append(rows, row)
		}
	}
	return rows
}

// RelaxedRows returns the rows drawn below the helpful actions marker
func (l Layout) RelaxedRows() []Row {
	var rows []Row
	for _, row := range l.Rows {
		if row.Section == Relaxed {
			rows = append(rows, row)
		}
	}
	return rows
}

// Layout capitalizes the plan in place, filters the visible steps through
// pred (nil shows everything), stacks plan-head rows, the helpful actions
// row and relaxed rows, and computes the bar geometry of every step.
func (r *Renderer) Layout(plan *model.Plan, planIndex int, pred Predicate) Layout {
	layout := Layout{
		PlanIndex: planIndex,
		Width:     r.opts.DisplayWidth,
		RowHeight: r.opts.RowHeight,
	}
	if plan == nil {
		return layout
	}

	plan.Capitalize()

	type visibleStep struct {
		index int
		step  model.PlanStep
	}
	var planHead, relaxed []visibleStep
	for i, step := range plan.Steps {
		if pred != nil && !pred.ShouldDisplay(step) {
			continue
		}
		if Classify(step, plan.Now) == PlanHead {
			planHead = append(planHead, visibleStep{i, step})
		} else {
			relaxed = append(relaxed, visibleStep{i, step})
		}
	}

	hasHelpful := len(plan.HelpfulActions) > 0
	rowCount := len(planHead) + len(relaxed)
	if hasHelpful {
		rowCount++
	}
	layout.Height = float64(rowCount) * r.opts.RowHeight

	row := 0
	for _, vs := range planHead {
		layout.Rows = append(layout.Rows, r.layoutRow(plan, vs.index, vs.step, PlanHead, row))
		row++
	}
	if hasHelpful {
		layout.Helpful = r.layoutHelpful(plan, row)
		row++
	}
	for _, vs := range relaxed {
		layout.Rows = append(layout.Rows, r.layoutRow(plan, vs.index, vs.step, Relaxed, row))
		row++
	}

	return layout
}

func (r *Renderer) layoutRow(plan *model.Plan, stepIndex int, step model.PlanStep, section Section, row int) Row {
	committed := r.CommittedDuration(step, plan)
	remainder := r.RelaxedDuration(step, committed)

	relaxedWidth := 0.0
	if remainder < 0 {
		r.logger.Warn("negative relaxed duration",
			"action", step.FullActionName(),
			"committed", committed,
			"relaxed", remainder)
	} else {
		relaxedWidth = r.TimeToPixels(remainder, plan)
	}

	return Row{
		Index:             row,
		StepIndex:         stepIndex,
		Step:              step,
		Section:           section,
		Left:              r.TimeToPixels(valueOr(step.StartTime, 0), plan),
		Top:               float64(row) * r.opts.RowHeight,
		CommittedDuration: committed,
		RelaxedDuration:   remainder,
		BarWidth:          r.WidthPixels(committed, plan),
		RelaxedWidth:      relaxedWidth,
		Color:             ActionColor(step.ActionName, plan.Domain),
		Label:             StepLabel(step),
		Tooltip:           StepTooltip(step),
	}
}

func (r *Renderer) layoutHelpful(plan *model.Plan, row int) *HelpfulMarker {
	marker := &HelpfulMarker{
		Row:  row,
		Left: r.TimeToPixels(valueOr(plan.Now, 0), plan),
		Top:  float64(row) * r.opts.RowHeight,
	}
	for _, action := range plan.HelpfulActions {
		marker.Items = append(marker.Items, HelpfulItem{
			ActionName: action.ActionName,
			Kind:       action.Kind,
			Glyph:      HelpfulActionSuffix(action.Kind),
			Label:      HelpfulActionLabel(action),
		})
	}
	return marker
}
