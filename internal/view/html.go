package view

import (
	"math"
	"strconv"

	"github.com/drew/planview/internal/element"
	"github.com/drew/planview/internal/model"
	"github.com/drew/planview/internal/timeline"
)

// CSS classes used by the HTML output; report.Styles targets them
const (
	ClassPlanBody        = "plan-body"
	ClassSteps           = "plan-steps"
	ClassStepLabel       = "planstep-label"
	ClassActionLink      = "action-link"
	ClassGantt           = "gantt"
	ClassStep            = "planstep"
	ClassBar             = "planstep-bar"
	ClassRelaxedBar      = "planstep-bar-relaxed"
	ClassPlanHead        = "planhead"
	ClassRelaxed         = "relaxed"
	ClassHelpfulLabel    = "helpful-label"
	ClassHelpfulMarker   = "helpful-actions"
	ClassHelpfulAction   = "helpful-action"
	AttrAction           = "data-action"
	AttrHelpfulKind      = "data-kind"
	helpfulActionsHeader = "Helpful actions"
)

// BuildHTML turns a layout into the element tree placed inside a plan region:
// a labels column and a Gantt column with absolutely positioned bars.
func BuildHTML(layout timeline.Layout, opts model.ViewOptions) *element.Element {
	steps := element.New("div").Class(ClassSteps).Style("height", px(layout.Height))
	gantt := element.New("div").Class(ClassGantt).
		Style("width", px(layout.Width)).
		Style("height", px(layout.Height))

	for _, row := range layout.Rows {
		steps.Append(stepLabel(layout, row, opts))
		gantt.Append(stepBars(layout, row))
	}

	if layout.Helpful != nil {
		steps.Append(element.New("div").Class(ClassStepLabel, ClassHelpfulLabel).
			Style("top", px(layout.Helpful.Top)).
			Style("height", px(layout.RowHeight)).
			SetText(helpfulActionsHeader))
		gantt.Append(helpfulMarker(layout.Helpful, layout.RowHeight))
	}

	return element.New("div").Class(ClassPlanBody).Append(steps, gantt)
}

func stepLabel(layout timeline.Layout, row timeline.Row, opts model.ViewOptions) *element.Element {
	label := element.New("div").Class(ClassStepLabel, sectionClass(row.Section)).
		Style("top", px(row.Top)).
		Style("height", px(layout.RowHeight))

	if opts.SelfContained {
		return label.Append(element.New("span").SetText(row.Label))
	}
	return label.Append(element.New("a").
		Class(ClassActionLink).
		Attr("href", "#").
		Attr(AttrAction, row.Step.ActionName).
		SetText(row.Label))
}

func stepBars(layout timeline.Layout, row timeline.Row) *element.Element {
	container := element.New("div").
		Attr("id", StepID(layout.PlanIndex, row.StepIndex)).
		Class(ClassStep, sectionClass(row.Section)).
		Style("left", px(row.Left)).
		Style("top", px(row.Top)).
		Style("height", px(layout.RowHeight))

	bar := element.New("div").Class(ClassBar).
		Style("width", px(row.BarWidth)).
		Style("background-color", row.Color)
	if row.Tooltip != "" {
		bar.Attr("title", row.Tooltip)
	}
	container.Append(bar)

	if row.RelaxedWidth > 0 {
		container.Append(element.New("div").Class(ClassRelaxedBar).
			Style("width", px(row.RelaxedWidth)).
			Style("border-color", row.Color))
	}
	return container
}

func helpfulMarker(marker *timeline.HelpfulMarker, rowHeight float64) *element.Element {
	el := element.New("div").Class(ClassHelpfulMarker).
		Style("left", px(marker.Left)).
		Style("top", px(marker.Top)).
		Style("height", px(rowHeight))

	for _, item := range marker.Items {
		el.Append(element.New("a").
			Class(ClassHelpfulAction).
			Attr("href", "#").
			Attr(AttrAction, item.ActionName).
			Attr(AttrHelpfulKind, string(item.Kind)).
			SetText(item.Label))
	}
	return el
}

// StepID identifies the bar container of a step within a plan
func StepID(planIndex, stepIndex int) string {
	return "plan" + strconv.Itoa(planIndex) + "step" + strconv.Itoa(stepIndex)
}

func sectionClass(s timeline.Section) string {
	if s == timeline.PlanHead {
		return ClassPlanHead
	}
	return ClassRelaxed
}

func px(v float64) string {
	return num(v) + "px"
}

// num rounds to two decimals to keep the markup readable
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
