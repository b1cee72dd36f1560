package features

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/drew/planview/internal/model"
	"github.com/drew/planview/internal/timeline"
)

// InitializeTimelineScenario registers the plan and layout steps
func InitializeTimelineScenario(sc *godog.ScenarioContext, shared *sharedContext) {
	sc.Step(`^a plan with makespan (-?[\d.]+) and no now cursor:$`, shared.aPlanWithoutNow)
	sc.Step(`^a plan with makespan (-?[\d.]+) and now (-?[\d.]+):$`, shared.aPlanWithNow)
	sc.Step(`^the plan suggests helpful actions:$`, shared.thePlanSuggestsHelpfulActions)
	sc.Step(`^the plan domain lists actions "([^"]*)"$`, shared.thePlanDomainListsActions)
	sc.Step(`^the display width is ([\d.]+)$`, shared.theDisplayWidthIs)
	sc.Step(`^the epsilon is ([\d.]+)$`, shared.theEpsilonIs)

	sc.Step(`^the plan is laid out$`, shared.thePlanIsLaidOut)

	sc.Step(`^every step is in the "([^"]*)" section$`, shared.everyStepIsInSection)
	sc.Step(`^step "([^"]*)" is in the "([^"]*)" section$`, shared.stepIsInSection)
	sc.Step(`^step "([^"]*)" has a bar width of ([\d.]+) pixels$`, shared.stepHasBarWidth)
	sc.Step(`^step "([^"]*)" has a relaxed bar width of ([\d.]+) pixels$`, shared.stepHasRelaxedWidth)
	sc.Step(`^step "([^"]*)" has committed duration ([\d.]+) and relaxed duration ([\d.]+)$`, shared.stepHasDurations)
	sc.Step(`^the committed and relaxed durations of every step add up to its duration$`, shared.durationsAddUp)
	sc.Step(`^step "([^"]*)" has colour "([^"]*)"$`, shared.stepHasColour)
	sc.Step(`^time (-?[\d.]+) maps to ([\d.]+) pixels$`, shared.timeMapsToPixels)
	sc.Step(`^later times never map to fewer pixels$`, shared.timeMappingIsMonotonic)
	sc.Step(`^the helpful actions marker is at ([\d.]+) pixels$`, shared.helpfulMarkerAt)
	sc.Step(`^the helpful actions marker sits between the plan head and the relaxed plan$`, shared.helpfulMarkerBetweenSections)
	sc.Step(`^there is no helpful actions marker$`, shared.noHelpfulMarker)
	sc.Step(`^helpful action "([^"]*)" is labelled "([^"]*)"$`, shared.helpfulActionLabelled)
	sc.Step(`^the log mentions "([^"]*)"$`, shared.theLogMentions)
	sc.Step(`^the log is silent$`, shared.theLogIsSilent)
}

func (c *sharedContext) aPlanWithoutNow(makespan float64, table *godog.Table) error {
	steps, err := parseStepTable(table)
	if err != nil {
		return err
	}
	c.plan = &model.Plan{Makespan: makespan, Steps: steps}
	return nil
}

func (c *sharedContext) aPlanWithNow(makespan, now float64, table *godog.Table) error {
	if err := c.aPlanWithoutNow(makespan, table); err != nil {
		return err
	}
	c.plan.Now = model.Float(now)
	return nil
}

func (c *sharedContext) thePlanSuggestsHelpfulActions(table *godog.Table) error {
	if c.plan == nil {
		return fmt.Errorf("no plan defined")
	}
	rows, err := tableMaps(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		c.plan.HelpfulActions = append(c.plan.HelpfulActions, model.HelpfulAction{
			ActionName: row["action"],
			Kind:       model.HappeningKind(row["kind"]),
		})
	}
	return nil
}

func (c *sharedContext) thePlanDomainListsActions(actions string) error {
	if c.plan == nil {
		return fmt.Errorf("no plan defined")
	}
	c.plan.Domain = &model.Domain{Actions: strings.Fields(actions)}
	return nil
}

func (c *sharedContext) theDisplayWidthIs(width float64) error {
	c.opts.DisplayWidth = width
	return nil
}

func (c *sharedContext) theEpsilonIs(epsilon float64) error {
	c.opts.Epsilon = epsilon
	return nil
}

func (c *sharedContext) thePlanIsLaidOut() error {
	if c.plan == nil {
		return fmt.Errorf("no plan defined")
	}
	c.layout = c.renderer().Layout(c.plan, 0, nil)
	return nil
}

func (c *sharedContext) everyStepIsInSection(section string) error {
	if len(c.layout.Rows) != len(c.plan.Steps) {
		return fmt.Errorf("expected %d rows, got %d", len(c.plan.Steps), len(c.layout.Rows))
	}
	for _, row := range c.layout.Rows {
		if row.Section.String() != section {
			return fmt.Errorf("step %q is in %s, expected %s", row.Label, row.Section, section)
		}
	}
	return nil
}

func (c *sharedContext) stepIsInSection(label, section string) error {
	row, err := c.row(label)
	if err != nil {
		return err
	}
	if row.Section.String() != section {
		return fmt.Errorf("step %q is in %s, expected %s", label, row.Section, section)
	}
	return nil
}

func (c *sharedContext) stepHasBarWidth(label string, width float64) error {
	row, err := c.row(label)
	if err != nil {
		return err
	}
	if !approxEqual(row.BarWidth, width) {
		return fmt.Errorf("step %q bar width is %v, expected %v", label, row.BarWidth, width)
	}
	return nil
}

func (c *sharedContext) stepHasRelaxedWidth(label string, width float64) error {
	row, err := c.row(label)
	if err != nil {
		return err
	}
	if !approxEqual(row.RelaxedWidth, width) {
		return fmt.Errorf("step %q relaxed width is %v, expected %v", label, row.RelaxedWidth, width)
	}
	return nil
}

func (c *sharedContext) stepHasDurations(label string, committed, relaxed float64) error {
	row, err := c.row(label)
	if err != nil {
		return err
	}
	if !approxEqual(row.CommittedDuration, committed) {
		return fmt.Errorf("step %q committed duration is %v, expected %v", label, row.CommittedDuration, committed)
	}
	if !approxEqual(row.RelaxedDuration, relaxed) {
		return fmt.Errorf("step %q relaxed duration is %v, expected %v", label, row.RelaxedDuration, relaxed)
	}
	return nil
}

func (c *sharedContext) durationsAddUp() error {
	r := c.renderer()
	for _, step := range c.plan.Steps {
		committed := r.CommittedDuration(step, c.plan)
		total := committed + r.RelaxedDuration(step, committed)

		want := c.opts.Epsilon
		if step.Duration != nil {
			want = *step.Duration
		}
		if !approxEqual(total, want) {
			return fmt.Errorf("step %q: committed + relaxed = %v, expected %v", step.FullActionName(), total, want)
		}
	}
	return nil
}

func (c *sharedContext) stepHasColour(label, colour string) error {
	row, err := c.row(label)
	if err != nil {
		return err
	}
	if row.Color != colour {
		return fmt.Errorf("step %q has colour %q, expected %q", label, row.Color, colour)
	}
	return nil
}

func (c *sharedContext) timeMapsToPixels(t, pixels float64) error {
	got := c.renderer().TimeToPixels(t, c.plan)
	if !approxEqual(got, pixels) {
		return fmt.Errorf("time %v maps to %v pixels, expected %v", t, got, pixels)
	}
	return nil
}

func (c *sharedContext) timeMappingIsMonotonic() error {
	r := c.renderer()
	prev := r.TimeToPixels(0, c.plan)
	for t := 0.25; t <= c.plan.Makespan*2; t += 0.25 {
		px := r.TimeToPixels(t, c.plan)
		if px < prev {
			return fmt.Errorf("time %v maps to %v pixels, below %v", t, px, prev)
		}
		prev = px
	}
	return nil
}

func (c *sharedContext) helpfulMarkerAt(pixels float64) error {
	if c.layout.Helpful == nil {
		return fmt.Errorf("no helpful actions marker")
	}
	if !approxEqual(c.layout.Helpful.Left, pixels) {
		return fmt.Errorf("marker is at %v pixels, expected %v", c.layout.Helpful.Left, pixels)
	}
	return nil
}

func (c *sharedContext) helpfulMarkerBetweenSections() error {
	marker := c.layout.Helpful
	if marker == nil {
		return fmt.Errorf("no helpful actions marker")
	}
	for _, row := range c.layout.Rows {
		if row.Section == timeline.PlanHead && row.Index > marker.Row {
			return fmt.Errorf("plan head step %q is below the marker", row.Label)
		}
		if row.Section == timeline.Relaxed && row.Index < marker.Row {
			return fmt.Errorf("relaxed step %q is above the marker", row.Label)
		}
	}
	return nil
}

func (c *sharedContext) noHelpfulMarker() error {
	if c.layout.Helpful != nil {
		return fmt.Errorf("expected no helpful actions marker, got %d items", len(c.layout.Helpful.Items))
	}
	return nil
}

func (c *sharedContext) helpfulActionLabelled(action, label string) error {
	if c.layout.Helpful == nil {
		return fmt.Errorf("no helpful actions marker")
	}
	for _, item := range c.layout.Helpful.Items {
		if item.ActionName == action {
			if item.Label != label {
				return fmt.Errorf("helpful action %q is labelled %q, expected %q", action, item.Label, label)
			}
			return nil
		}
	}
	return fmt.Errorf("helpful action %q not found", action)
}

func (c *sharedContext) theLogMentions(text string) error {
	if !strings.Contains(c.logs.String(), text) {
		return fmt.Errorf("expected log to mention %q, got:\n%s", text, c.logs.String())
	}
	return nil
}

func (c *sharedContext) theLogIsSilent() error {
	if c.logs.Len() > 0 {
		return fmt.Errorf("expected no log output, got:\n%s", c.logs.String())
	}
	return nil
}

// parseStepTable reads | action | objects | start | duration | commitment |
// rows; empty start or duration cells leave the field unset
func parseStepTable(table *godog.Table) ([]model.PlanStep, error) {
	rows, err := tableMaps(table)
	if err != nil {
		return nil, err
	}

	var steps []model.PlanStep
	for _, row := range rows {
		step := model.PlanStep{
			ActionName: row["action"],
			Objects:    strings.Fields(row["objects"]),
			Commitment: model.ParseCommitment(row["commitment"]),
			Iterations: 1,
		}
		if step.StartTime, err = optionalFloat(row["start"]); err != nil {
			return nil, err
		}
		if step.Duration, err = optionalFloat(row["duration"]); err != nil {
			return nil, err
		}
		step.IsDurative = step.Duration != nil
		steps = append(steps, step)
	}
	return steps, nil
}

// tableMaps turns a table with a header row into one map per data row
func tableMaps(table *godog.Table) ([]map[string]string, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, fmt.Errorf("expected a table with a header row")
	}
	header := table.Rows[0].Cells

	var out []map[string]string
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != len(header) {
			return nil, fmt.Errorf("row has %d cells, header has %d", len(row.Cells), len(header))
		}
		m := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			m[strings.TrimSpace(header[i].Value)] = strings.TrimSpace(cell.Value)
		}
		out = append(out, m)
	}
	return out, nil
}

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return &f, nil
}
