// Package report writes standalone plan pages and images.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"golang.org/x/net/html"

	"github.com/drew/planview/assets"
	"github.com/drew/planview/internal/element"
	"github.com/drew/planview/internal/logging"
	"github.com/drew/planview/internal/model"
	"github.com/drew/planview/internal/timeline"
	"github.com/drew/planview/internal/view"
)

// HostID is the id of the container plan regions are rendered into
const HostID = "plans"

// Options controls page and image output
type Options struct {
	Title     string
	View      model.ViewOptions
	Predicate timeline.Predicate
	// Interactive adds the script that posts selections back to the viewer
	Interactive bool
	Callbacks   view.Callbacks
	Logger      *logging.Logger
}

type pageData struct {
	Title       string
	Plans       []planSummary
	Interactive bool
	Stylesheet  template.CSS
	Script      template.JS
}

type planSummary struct {
	Index    int
	Steps    int
	Makespan float64
	Now      *float64
	Helpful  int
}

// WriteHTML renders plans into a complete HTML page. The page skeleton is
// produced from a template, then each plan is rendered into its own region
// under the #plans container.
func WriteHTML(w io.Writer, plans []*model.Plan, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	doc, err := buildPage(plans, opts)
	if err != nil {
		return err
	}

	host := element.FindByID(doc, HostID)
	pv, err := view.NewPlanView(host, opts.View, opts.Callbacks, logger)
	if err != nil {
		return fmt.Errorf("failed to attach plan view: %w", err)
	}

	for i, plan := range plans {
		pv.Render(plan, i, opts.Predicate)
	}

	return html.Render(w, doc)
}

func buildPage(plans []*model.Plan, opts Options) (*html.Node, error) {
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"formatTime": formatTime,
		"inc":        func(i int) int { return i + 1 },
		"deref": func(f *float64) float64 {
			if f != nil {
				return *f
			}
			return 0
		},
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	title := opts.Title
	if title == "" {
		title = "Plan"
	}
	data := pageData{
		Title:       title,
		Interactive: opts.Interactive,
		Stylesheet:  template.CSS(assets.Stylesheet),
		Script:      template.JS(assets.ViewerScript),
	}
	for i, p := range plans {
		data.Plans = append(data.Plans, planSummary{
			Index:    i,
			Steps:    len(p.Steps),
			Makespan: p.Makespan,
			Now:      p.Now,
			Helpful:  len(p.HelpfulActions),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render page template: %w", err)
	}

	doc, err := html.Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

// WriteSVG renders one plan as a standalone SVG image
func WriteSVG(w io.Writer, plan *model.Plan, planIndex int, opts Options) error {
	renderer := timeline.NewRenderer(opts.View, opts.Logger)
	layout := renderer.Layout(plan, planIndex, opts.Predicate)
	if _, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"); err != nil {
		return err
	}
	return element.Render(w, view.BuildSVG(layout))
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
