package config

import (
	"testing"

	"github.com/drew/planview/internal/model"
)

func TestVisibilityShouldDisplay(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		step     model.PlanStep
		want     bool
	}{
		{
			name: "no patterns",
			step: model.PlanStep{ActionName: "load", Objects: []string{"p1"}},
			want: true,
		},
		{
			name:     "prefix glob",
			patterns: []string{"noop*"},
			step:     model.PlanStep{ActionName: "noop"},
			want:     false,
		},
		{
			name:     "case insensitive",
			patterns: []string{"DRIVE *"},
			step:     model.PlanStep{ActionName: "Drive", Objects: []string{"T1"}},
			want:     false,
		},
		{
			name:     "objects must match",
			patterns: []string{"drive t2"},
			step:     model.PlanStep{ActionName: "drive", Objects: []string{"t1"}},
			want:     true,
		},
		{
			name:     "alternation",
			patterns: []string{"{load,unload} *"},
			step:     model.PlanStep{ActionName: "unload", Objects: []string{"p1", "t1"}},
			want:     false,
		},
		{
			name:     "blank pattern ignored",
			patterns: []string{"  "},
			step:     model.PlanStep{ActionName: "load"},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVisibility(tt.patterns)
			if err != nil {
				t.Fatalf("NewVisibility failed: %v", err)
			}
			if got := v.ShouldDisplay(tt.step); got != tt.want {
				t.Errorf("ShouldDisplay(%s) = %v, want %v", tt.step.FullActionName(), got, tt.want)
			}
		})
	}
}

func TestNewVisibilityInvalidPattern(t *testing.T) {
	if _, err := NewVisibility([]string{"[unterminated"}); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}

func TestNilVisibilityShowsEverything(t *testing.T) {
	var v *Visibility
	if !v.ShouldDisplay(model.PlanStep{ActionName: "load"}) {
		t.Error("Expected nil visibility to show every step")
	}
}

func TestConfigPredicate(t *testing.T) {
	cfg := &Config{Visibility: VisibilityConfig{ExcludeActions: []string{"wait*"}}}
	v, err := cfg.Predicate()
	if err != nil {
		t.Fatalf("Predicate failed: %v", err)
	}
	if v.ShouldDisplay(model.PlanStep{ActionName: "wait"}) {
		t.Error("Expected wait to be hidden")
	}
}
