// Package model holds the plan types shared by the loaders and renderers.
package model

import (
	"strconv"
	"strings"
)

// Commitment describes whether a step's start and end are locked into the
// executed plan prefix or still speculative
type Commitment int

const (
	Unknown Commitment = iota
	Committed
	EndsInRelaxedPlan
	StartsInRelaxedPlan
)

var commitmentNames = map[Commitment]string{
	Unknown:             "unknown",
	Committed:           "committed",
	EndsInRelaxedPlan:   "ends-in-relaxed-plan",
	StartsInRelaxedPlan: "starts-in-relaxed-plan",
}

func (c Commitment) String() string {
	if name, ok := commitmentNames[c]; ok {
		return name
	}
	return "commitment(" + strconv.Itoa(int(c)) + ")"
}

// ParseCommitment maps the text form used in plan files to a Commitment.
// Unrecognized text yields Unknown.
func ParseCommitment(s string) Commitment {
	c, _ := LookupCommitment(s)
	return c
}

// LookupCommitment is ParseCommitment that also reports whether s named a
// commitment at all
func LookupCommitment(s string) (Commitment, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range commitmentNames {
		if name == s {
			return c, true
		}
	}
	switch s {
	case "endsinrelaxedplan", "ends_in_relaxed_plan":
		return EndsInRelaxedPlan, true
	case "startsinrelaxedplan", "starts_in_relaxed_plan":
		return StartsInRelaxedPlan, true
	}
	return Unknown, false
}

// UnmarshalText lets plan files spell commitments as strings
func (c *Commitment) UnmarshalText(text []byte) error {
	*c = ParseCommitment(string(text))
	return nil
}

// MarshalText is the inverse of UnmarshalText
func (c Commitment) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// HappeningKind tells whether a helpful action starts or ends a durative action
type HappeningKind string

const (
	HappeningStart HappeningKind = "START"
	HappeningEnd   HappeningKind = "END"
)

// HelpfulAction is a suggested next action surfaced by the planner
type HelpfulAction struct {
	ActionName string        `yaml:"actionName" json:"actionName"`
	Kind       HappeningKind `yaml:"kind" json:"kind"`
}

// Domain is the action catalog used for colour lookup
type Domain struct {
	Name    string   `yaml:"name" json:"name"`
	Actions []string `yaml:"actions" json:"actions"`
}

// PlanStep is one scheduled action
type PlanStep struct {
	ActionName string     `yaml:"actionName" json:"actionName"`
	Objects    []string   `yaml:"objects" json:"objects"`
	StartTime  *float64   `yaml:"startTime" json:"startTime,omitempty"`
	Duration   *float64   `yaml:"duration" json:"duration,omitempty"`
	IsDurative bool       `yaml:"isDurative" json:"isDurative"`
	Commitment Commitment `yaml:"commitment" json:"commitment"`
	Iterations int        `yaml:"iterations" json:"iterations"`
}

// EndTime is start + duration, or start when the step has no duration.
// A missing start time counts as 0.
func (s PlanStep) EndTime() float64 {
	start := 0.0
	if s.StartTime != nil {
		start = *s.StartTime
	}
	if s.Duration != nil {
		return start + *s.Duration
	}
	return start
}

// FullActionName is the action name followed by its objects
func (s PlanStep) FullActionName() string {
	if len(s.Objects) == 0 {
		return s.ActionName
	}
	return s.ActionName + " " + strings.Join(s.Objects, " ")
}

// Capitalize upper-cases the action name and objects in place
func (s *PlanStep) Capitalize() {
	s.ActionName = strings.ToUpper(s.ActionName)
	for i, o := range s.Objects {
		s.Objects[i] = strings.ToUpper(o)
	}
}

// Plan is an ordered collection of scheduled steps
type Plan struct {
	Steps          []PlanStep      `yaml:"steps" json:"steps"`
	Now            *float64        `yaml:"now" json:"now,omitempty"`
	Makespan       float64         `yaml:"makespan" json:"makespan"`
	HelpfulActions []HelpfulAction `yaml:"helpfulActions" json:"helpfulActions,omitempty"`
	Domain         *Domain         `yaml:"domain" json:"domain,omitempty"`
}

// Capitalize normalizes every step's text in place
func (p *Plan) Capitalize() {
	for i := range p.Steps {
		p.Steps[i].Capitalize()
	}
}

// ComputeMakespan returns the latest end time across all steps
func (p *Plan) ComputeMakespan() float64 {
	makespan := 0.0
	for _, s := range p.Steps {
		if end := s.EndTime(); end > makespan {
			makespan = end
		}
	}
	return makespan
}

// ViewOptions controls how a plan is laid out
type ViewOptions struct {
	// Fallback duration for instantaneous or durationless actions
	Epsilon float64
	// Pixels spanning time 0..makespan
	DisplayWidth float64
	// Height of one row in pixels
	RowHeight float64
	// Disables cross-references to the plan source
	SelfContained bool
	// Reserved
	DisableSwimlanes bool
}

// DefaultViewOptions returns the options used when nothing is configured
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Epsilon:      0.001,
		DisplayWidth: 300,
		RowHeight:    20,
	}
}

// Float returns a pointer to f, for optional plan fields
func Float(f float64) *float64 {
	return &f
}
