// Package features holds the behaviour scenarios for planview.
package features

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/drew/planview/internal/element"
	"github.com/drew/planview/internal/logging"
	"github.com/drew/planview/internal/model"
	"github.com/drew/planview/internal/timeline"
	"github.com/drew/planview/internal/view"
)

// tolerance for comparing pixel and time arithmetic
const tolerance = 1e-9

// sharedContext holds ALL state for a scenario - used by all step definitions
type sharedContext struct {
	opts   model.ViewOptions
	plan   *model.Plan
	layout timeline.Layout
	logs   bytes.Buffer

	// host document for rendering scenarios
	doc  *html.Node
	view *view.PlanView
	page string

	// CLI scenarios
	tempDir  string
	startDir string
	output   string
	cmdErr   error
}

func newSharedContext() *sharedContext {
	return &sharedContext{opts: model.DefaultViewOptions()}
}

func (c *sharedContext) logger() *logging.Logger {
	return logging.NewLogger(&c.logs, logging.LevelDebug, logging.FormatText)
}

func (c *sharedContext) renderer() *timeline.Renderer {
	return timeline.NewRenderer(c.opts, c.logger())
}

// renderPage renders the plan into the host document, creating it on first
// use, and keeps the serialized page
func (c *sharedContext) renderPage(planIndex int) error {
	if c.view == nil {
		doc, err := html.Parse(strings.NewReader(`<html><body><div id="plans"></div></body></html>`))
		if err != nil {
			return err
		}
		pv, err := view.NewPlanView(element.FindByID(doc, "plans"), c.opts, view.Callbacks{}, c.logger())
		if err != nil {
			return err
		}
		c.doc, c.view = doc, pv
	}
	c.layout = c.view.Render(c.plan, planIndex, nil)

	var buf bytes.Buffer
	if err := html.Render(&buf, c.doc); err != nil {
		return err
	}
	c.page = buf.String()
	return nil
}

func (c *sharedContext) row(label string) (timeline.Row, error) {
	for _, row := range c.layout.Rows {
		if strings.EqualFold(row.Step.FullActionName(), label) {
			return row, nil
		}
	}
	return timeline.Row{}, fmt.Errorf("no row for %q", label)
}

// cleanup restores the working directory changed by CLI scenarios
func (c *sharedContext) cleanup() error {
	if c.startDir != "" {
		if err := os.Chdir(c.startDir); err != nil {
			return err
		}
	}
	if c.tempDir != "" {
		return os.RemoveAll(c.tempDir)
	}
	return nil
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}
