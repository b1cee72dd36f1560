package planfile

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"

	"github.com/drew/planview/internal/model"
)

var (
	// 0.000: (load p1 t1) [2.000] ; committed
	stepPattern = regexp.MustCompile(`^([-+0-9.eE]+)\s*:\s*\(([^)]*)\)\s*(?:\[\s*([-+0-9.eE]+)\s*\])?\s*(?:;\s*(.*))?$`)
	// lines that claim to be steps but may not parse
	stepPrefix = regexp.MustCompile(`^[-+0-9.]+\s*:`)
	// (unload p1) start
	helpfulPattern = regexp.MustCompile(`^\(([^)]*)\)\s*(\w*)$`)
)

// ParseText reads planner text output. Step lines look like
//
//	time: (action obj...) [duration] ; commitment
//
// and comment directives set the remaining plan fields:
//
//	; now = 5
//	; makespan = 12
//	; helpful: (unload p1) start
//	; domain: load drive unload
//
// Other lines are ignored so captured planner logs can be loaded as-is.
func ParseText(r io.Reader) (*model.Plan, error) {
	plan := &model.Plan{}
	hasMakespan := false
	explicit := map[int]bool{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(stripansi.Strip(scanner.Text()))
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ";") {
			set, err := parseDirective(plan, strings.TrimSpace(strings.TrimLeft(line, ";")))
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: err.Error()}
			}
			if set == "makespan" {
				hasMakespan = true
			}
			continue
		}

		if !stepPrefix.MatchString(line) {
			continue
		}
		step, hasCommitment, err := parseStep(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}
		if appendStep(plan, step) && hasCommitment {
			explicit[len(plan.Steps)-1] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	if plan.Now != nil {
		for i := range plan.Steps {
			if !explicit[i] {
				plan.Steps[i].Commitment = inferCommitment(plan.Steps[i], *plan.Now)
			}
		}
	}
	if !hasMakespan {
		plan.Makespan = plan.ComputeMakespan()
	}
	return plan, nil
}

func parseStep(line string) (model.PlanStep, bool, error) {
	m := stepPattern.FindStringSubmatch(line)
	if m == nil {
		return model.PlanStep{}, false, fmt.Errorf("malformed step %q", line)
	}

	start, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return model.PlanStep{}, false, fmt.Errorf("invalid start time %q", m[1])
	}

	fields := strings.Fields(m[2])
	if len(fields) == 0 {
		return model.PlanStep{}, false, fmt.Errorf("step at %s has no action", m[1])
	}

	step := model.PlanStep{
		ActionName: fields[0],
		Objects:    fields[1:],
		StartTime:  model.Float(start),
		Iterations: 1,
	}

	if m[3] != "" {
		d, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return model.PlanStep{}, false, fmt.Errorf("invalid duration %q", m[3])
		}
		step.Duration = model.Float(d)
		step.IsDurative = true
	}

	// other trailing comments leave the commitment to inference
	c, hasCommitment := model.LookupCommitment(m[4])
	if hasCommitment {
		step.Commitment = c
	}
	return step, hasCommitment, nil
}

// appendStep adds step to the plan, or bumps the iteration count of the
// previous step when it is the same action at the same time. It reports
// whether a new step was added.
func appendStep(plan *model.Plan, step model.PlanStep) bool {
	if n := len(plan.Steps); n > 0 && sameHappening(plan.Steps[n-1], step) {
		plan.Steps[n-1].Iterations++
		return false
	}
	plan.Steps = append(plan.Steps, step)
	return true
}

func sameHappening(a, b model.PlanStep) bool {
	return *a.StartTime == *b.StartTime &&
		a.FullActionName() == b.FullActionName() &&
		equalDuration(a.Duration, b.Duration)
}

func equalDuration(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// inferCommitment derives a step's state from the now cursor when the
// planner did not annotate it
func inferCommitment(step model.PlanStep, now float64) model.Commitment {
	start := *step.StartTime
	switch {
	case step.EndTime() <= now:
		return model.Committed
	case start < now:
		return model.StartsInRelaxedPlan
	default:
		return model.Unknown
	}
}

// parseDirective applies one comment line and returns the directive name it set
func parseDirective(plan *model.Plan, body string) (string, error) {
	key, value, ok := cutDirective(body)
	if !ok {
		return "", nil
	}

	switch key {
	case "now":
		t, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("invalid now %q", value)
		}
		plan.Now = model.Float(t)
	case "makespan":
		t, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("invalid makespan %q", value)
		}
		plan.Makespan = t
	case "helpful":
		m := helpfulPattern.FindStringSubmatch(value)
		if m == nil {
			return "", fmt.Errorf("malformed helpful action %q", value)
		}
		plan.HelpfulActions = append(plan.HelpfulActions, model.HelpfulAction{
			ActionName: strings.Join(strings.Fields(m[1]), " "),
			Kind:       model.HappeningKind(strings.ToUpper(m[2])),
		})
	case "domain":
		if plan.Domain == nil {
			plan.Domain = &model.Domain{}
		}
		plan.Domain.Actions = append(plan.Domain.Actions, strings.Fields(value)...)
	case "domain-name":
		if plan.Domain == nil {
			plan.Domain = &model.Domain{}
		}
		plan.Domain.Name = value
	default:
		return "", nil
	}
	return key, nil
}

// cutDirective splits "key = value" or "key: value"
func cutDirective(body string) (string, string, bool) {
	i := strings.IndexAny(body, "=:")
	if i <= 0 {
		return "", "", false
	}
	key := strings.ToLower(strings.TrimSpace(body[:i]))
	if strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return key, strings.TrimSpace(body[i+1:]), true
}
