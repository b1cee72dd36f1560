package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/drew/planview/internal/model"
	"github.com/drew/planview/internal/timeline"
)

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

func plainGantt(columns int) *Gantt {
	return NewGantt(NewColors(&bytes.Buffer{}, false), model.DefaultViewOptions(), columns, nil)
}

func TestGanttRender(t *testing.T) {
	var buf bytes.Buffer
	// 15 label columns + 2 gap + 20 bar columns
	if err := plainGantt(37).Render(&buf, samplePlan(), 0, nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := strings.Join([]string{
		"Plan 1  2 steps, makespan 10, now 5",
		"LOAD P1          ████",
		"Helpful actions            │ unload├",
		"DRIVE T1             ██████░░░░░░",
		"                 0                 10",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("Unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestGanttStaticPlan(t *testing.T) {
	plan := samplePlan()
	plan.Now = nil
	plan.HelpfulActions = nil

	var buf bytes.Buffer
	if err := plainGantt(30).Render(&buf, plan, 2, nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Plan 3  2 steps, makespan 10\n") {
		t.Errorf("Unexpected header in:\n%s", out)
	}
	if strings.Contains(out, relaxedGlyph) {
		t.Errorf("Static plan should have no relaxed bars:\n%s", out)
	}
	if strings.Contains(out, helpfulHeader) {
		t.Errorf("Expected no helpful row:\n%s", out)
	}
}

func TestGanttPredicate(t *testing.T) {
	hideLoad := timeline.PredicateFunc(func(s model.PlanStep) bool { return s.ActionName != "LOAD" })

	var buf bytes.Buffer
	if err := plainGantt(60).Render(&buf, samplePlan(), 0, hideLoad); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(buf.String(), "LOAD P1") {
		t.Errorf("Expected load hidden:\n%s", buf.String())
	}
}

func TestGanttMinimumBarColumns(t *testing.T) {
	var buf bytes.Buffer
	if err := plainGantt(5).Render(&buf, samplePlan(), 0, nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// bars still get minBarColumns even when the terminal is narrower than the labels
	if !strings.Contains(buf.String(), committedGlyph) {
		t.Errorf("Expected bars in narrow output:\n%s", buf.String())
	}
}

func TestPadLabel(t *testing.T) {
	tests := []struct {
		label string
		width int
		want  string
	}{
		{"LOAD", 6, "LOAD  "},
		{"LOAD", 4, "LOAD"},
		{"UNLOAD P1", 5, "UNLO…"},
	}
	for _, tt := range tests {
		if got := padLabel(tt.label, tt.width); got != tt.want {
			t.Errorf("padLabel(%q, %d) = %q, want %q", tt.label, tt.width, got, tt.want)
		}
	}
}

func TestColumns(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{-1, 0},
		{4.4, 4},
		{4.5, 5},
	}
	for _, tt := range tests {
		if got := columns(tt.in); got != tt.want {
			t.Errorf("columns(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
