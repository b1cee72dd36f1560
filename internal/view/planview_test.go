package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/drew/planview/internal/element"
	"github.com/drew/planview/internal/model"
	"github.com/drew/planview/internal/timeline"
)

func newHost(t *testing.T) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(`<html><body><div id="plans"></div></body></html>`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	host := element.FindByID(doc, "plans")
	if host == nil {
		t.Fatal("host not found")
	}
	return host
}

func samplePlan() *model.Plan {
	return &model.Plan{
		Makespan: 10,
		Now:      model.Float(5),
		Steps: []model.PlanStep{
			{ActionName: "load", Objects: []string{"p1"}, StartTime: model.Float(0), Duration: model.Float(2), IsDurative: true, Commitment: model.Committed},
			{ActionName: "drive", Objects: []string{"t1"}, StartTime: model.Float(2), Duration: model.Float(6), IsDurative: true, Commitment: model.StartsInRelaxedPlan},
		},
		HelpfulActions: []model.HelpfulAction{{ActionName: "unload", Kind: model.HappeningStart}},
		Domain:         &model.Domain{Actions: []string{"load", "drive", "unload"}},
	}
}

func renderString(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func TestNewPlanViewRequiresHost(t *testing.T) {
	_, err := NewPlanView(nil, model.DefaultViewOptions(), Callbacks{}, nil)
	if !errors.Is(err, ErrNoHost) {
		t.Errorf("Expected ErrNoHost, got %v", err)
	}
}

func TestRenderCreatesRegion(t *testing.T) {
	host := newHost(t)
	v, err := NewPlanView(host, model.DefaultViewOptions(), Callbacks{}, nil)
	if err != nil {
		t.Fatalf("NewPlanView failed: %v", err)
	}

	layout := v.Render(samplePlan(), 0, nil)
	if len(layout.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(layout.Rows))
	}

	region := element.FindByID(host, RegionID(0))
	if region == nil {
		t.Fatal("Expected region plan0 under host")
	}

	out := renderString(t, region)
	for _, want := range []string{
		`id="plan0step0"`,
		`id="plan0step1"`,
		ClassRelaxedBar,
		"unload" + timeline.StartGlyph,
		"background-color: #ff0000;",
		`data-action="LOAD"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderReplacesRegion(t *testing.T) {
	host := newHost(t)
	v, err := NewPlanView(host, model.DefaultViewOptions(), Callbacks{}, nil)
	if err != nil {
		t.Fatalf("NewPlanView failed: %v", err)
	}

	v.Render(samplePlan(), 0, nil)
	v.Render(samplePlan(), 0, nil)
	v.Render(samplePlan(), 1, nil)

	regions := element.ChildElements(host)
	if len(regions) != 2 {
		t.Fatalf("Expected 2 regions after re-render, got %d", len(regions))
	}

	out := renderString(t, host)
	if got := strings.Count(out, `id="plan0step0"`); got != 1 {
		t.Errorf("Expected plan0step0 exactly once, got %d", got)
	}
	if got := strings.Count(out, `id="plan1step0"`); got != 1 {
		t.Errorf("Expected plan1step0 exactly once, got %d", got)
	}
}

func TestRenderAppliesPredicate(t *testing.T) {
	host := newHost(t)
	v, _ := NewPlanView(host, model.DefaultViewOptions(), Callbacks{}, nil)

	pred := timeline.PredicateFunc(func(s model.PlanStep) bool { return s.ActionName != "DRIVE" })
	v.Render(samplePlan(), 0, pred)

	out := renderString(t, host)
	if strings.Contains(out, "plan0step1") {
		t.Errorf("Hidden step should not be rendered:\n%s", out)
	}
}

func TestCallbacks(t *testing.T) {
	var revealed, selected string
	host := newHost(t)
	v, _ := NewPlanView(host, model.DefaultViewOptions(), Callbacks{
		OnRevealAction:          func(name string) { revealed = name },
		OnHelpfulActionSelected: func(name string) { selected = name },
	}, nil)

	v.RevealAction("LOAD")
	v.SelectHelpfulAction("unload")

	if revealed != "LOAD" {
		t.Errorf("Expected reveal callback with LOAD, got %q", revealed)
	}
	if selected != "unload" {
		t.Errorf("Expected helpful callback with unload, got %q", selected)
	}
}

func TestNilCallbacksAreIgnored(t *testing.T) {
	v, _ := NewPlanView(newHost(t), model.DefaultViewOptions(), Callbacks{}, nil)
	v.RevealAction("LOAD")
	v.SelectHelpfulAction("unload")
}

func TestRenderSVG(t *testing.T) {
	v, _ := NewPlanView(newHost(t), model.DefaultViewOptions(), Callbacks{}, nil)

	tree := v.RenderSVG(samplePlan(), 0, nil)

	var buf bytes.Buffer
	if err := element.Render(&buf, tree); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<svg") {
		t.Errorf("Expected svg root, got %s", out)
	}
	if !strings.Contains(out, `fill="#ff0000"`) {
		t.Errorf("Expected load bar colour in SVG:\n%s", out)
	}
	if !strings.Contains(out, "<title>Start: 0\nDuration: 2.0000\nEnd: 2</title>") {
		t.Errorf("Expected tooltip title in SVG:\n%s", out)
	}
}
