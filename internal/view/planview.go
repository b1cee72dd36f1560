// Package view attaches rendered plans to a host document.
package view

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/drew/planview/internal/element"
	"github.com/drew/planview/internal/logging"
	"github.com/drew/planview/internal/model"
	"github.com/drew/planview/internal/timeline"
)

// ErrNoHost is returned when a PlanView is constructed without a host container
var ErrNoHost = errors.New("plan view host element not found")

// Callbacks receive user selections. Nil callbacks are ignored.
type Callbacks struct {
	// OnRevealAction is called with an action name when its label is selected
	OnRevealAction func(actionName string)
	// OnHelpfulActionSelected is called when a suggested next action is selected
	OnHelpfulActionSelected func(actionName string)
}

// PlanView renders plans into regions of a host container, one region per plan index
type PlanView struct {
	host      *html.Node
	renderer  *timeline.Renderer
	callbacks Callbacks
	logger    *logging.Logger
}

// NewPlanView creates a PlanView attached to host
func NewPlanView(host *html.Node, opts model.ViewOptions, callbacks Callbacks, logger *logging.Logger) (*PlanView, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &PlanView{
		host:      host,
		renderer:  timeline.NewRenderer(opts, logger),
		callbacks: callbacks,
		logger:    logger,
	}, nil
}

// Renderer exposes the layout engine used by the view
func (v *PlanView) Renderer() *timeline.Renderer {
	return v.renderer
}

// Host returns the container the view renders into
func (v *PlanView) Host() *html.Node {
	return v.host
}

// RegionID is the id of the element holding plan planIndex
func RegionID(planIndex int) string {
	return fmt.Sprintf("plan%d", planIndex)
}

// Render lays out plan and replaces the contents of its region under the
// host. The region is created on first render; re-rendering the same index
// rebuilds it rather than appending a second copy.
func (v *PlanView) Render(plan *model.Plan, planIndex int, pred timeline.Predicate) timeline.Layout {
	layout := v.renderer.Layout(plan, planIndex, pred)
	tree := BuildHTML(layout, v.renderer.Options())

	region := v.region(planIndex)
	element.ReplaceChildren(region, element.ToNode(tree))

	v.logger.WithPlan(planIndex).Debug("rendered plan",
		"rows", len(layout.Rows),
		"helpful", layout.Helpful != nil,
		"height", layout.Height)
	return layout
}

// RenderSVG lays out plan as a standalone SVG tree
func (v *PlanView) RenderSVG(plan *model.Plan, planIndex int, pred timeline.Predicate) *element.Element {
	layout := v.renderer.Layout(plan, planIndex, pred)
	return BuildSVG(layout)
}

// RevealAction dispatches an action label selection
func (v *PlanView) RevealAction(actionName string) {
	v.logger.Debug("reveal action", "action", actionName)
	if v.callbacks.OnRevealAction != nil {
		v.callbacks.OnRevealAction(actionName)
	}
}

// SelectHelpfulAction dispatches a helpful action selection
func (v *PlanView) SelectHelpfulAction(actionName string) {
	v.logger.Debug("helpful action selected", "action", actionName)
	if v.callbacks.OnHelpfulActionSelected != nil {
		v.callbacks.OnHelpfulActionSelected(actionName)
	}
}

func (v *PlanView) region(planIndex int) *html.Node {
	id := RegionID(planIndex)
	for _, c := range element.ChildElements(v.host) {
		if element.AttrValue(c, "id") == id {
			return c
		}
	}
	region := element.ToNode(element.New("div").Attr("id", id).Class("plan"))
	v.host.AppendChild(region)
	return region
}
