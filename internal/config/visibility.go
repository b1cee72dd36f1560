package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/drew/planview/internal/model"
)

// Visibility hides steps whose full action name matches an exclude pattern
type Visibility struct {
	patterns []string
}

// NewVisibility compiles the exclude patterns. Matching is case-insensitive.
func NewVisibility(patterns []string) (*Visibility, error) {
	v := &Visibility{}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
		v.patterns = append(v.patterns, p)
	}
	return v, nil
}

// Predicate builds the step filter for the visibility section
func (c *Config) Predicate() (*Visibility, error) {
	return NewVisibility(c.Visibility.ExcludeActions)
}

// ShouldDisplay reports whether step is shown
func (v *Visibility) ShouldDisplay(step model.PlanStep) bool {
	if v == nil || len(v.patterns) == 0 {
		return true
	}
	name := strings.ToLower(step.FullActionName())
	for _, p := range v.patterns {
		// patterns were validated in NewVisibility
		if matched, _ := doublestar.Match(p, name); matched {
			return false
		}
	}
	return true
}
