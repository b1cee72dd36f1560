package features

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/drew/planview/internal/element"
	"github.com/drew/planview/internal/view"
)

// InitializeRenderingScenario registers the host document steps
func InitializeRenderingScenario(sc *godog.ScenarioContext, shared *sharedContext) {
	sc.Step(`^the plan is rendered as plan (\d+)$`, shared.thePlanIsRenderedAs)
	sc.Step(`^the page contains "([^"]*)"$`, shared.thePageContains)
	sc.Step(`^the page does not contain "([^"]*)"$`, shared.thePageDoesNotContain)
	sc.Step(`^the page contains markup '([^']*)'$`, shared.thePageContains)
	sc.Step(`^the page contains markup '([^']*)' exactly once$`, shared.thePageContainsOnce)
	sc.Step(`^the host holds (\d+) plan regions?$`, shared.theHostHoldsRegions)
}

func (c *sharedContext) thePlanIsRenderedAs(planIndex int) error {
	if c.plan == nil {
		return fmt.Errorf("no plan defined")
	}
	return c.renderPage(planIndex)
}

func (c *sharedContext) thePageContains(text string) error {
	if !strings.Contains(c.page, text) {
		return fmt.Errorf("expected page to contain %q, got:\n%s", text, c.page)
	}
	return nil
}

func (c *sharedContext) thePageDoesNotContain(text string) error {
	if strings.Contains(c.page, text) {
		return fmt.Errorf("expected page not to contain %q", text)
	}
	return nil
}

func (c *sharedContext) thePageContainsOnce(text string) error {
	if n := strings.Count(c.page, text); n != 1 {
		return fmt.Errorf("expected %q exactly once, found %d times", text, n)
	}
	return nil
}

func (c *sharedContext) theHostHoldsRegions(count int) error {
	if c.view == nil {
		return fmt.Errorf("nothing rendered yet")
	}
	regions := element.ChildElements(c.view.Host())
	if len(regions) != count {
		return fmt.Errorf("expected %d regions, got %d", count, len(regions))
	}
	for i := range count {
		if element.FindByID(c.view.Host(), view.RegionID(i)) == nil {
			return fmt.Errorf("region %s missing", view.RegionID(i))
		}
	}
	return nil
}
