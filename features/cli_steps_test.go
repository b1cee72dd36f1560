package features

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"github.com/drew/planview/internal/cli"
)

// InitializeCLIScenario registers the command line steps
func InitializeCLIScenario(sc *godog.ScenarioContext, shared *sharedContext) {
	sc.Step(`^an empty working directory$`, shared.anEmptyWorkingDirectory)
	sc.Step(`^a file "([^"]*)" containing:$`, shared.aFileContaining)
	sc.Step(`^I run planview with "([^"]*)"$`, shared.iRunPlanview)
	sc.Step(`^the command succeeds$`, shared.theCommandSucceeds)
	sc.Step(`^the command fails$`, shared.theCommandFails)
	sc.Step(`^the output contains "([^"]*)"$`, shared.theOutputContains)
	sc.Step(`^the error mentions "([^"]*)"$`, shared.theErrorMentions)
	sc.Step(`^the file "([^"]*)" exists$`, shared.theFileExists)
	sc.Step(`^the file "([^"]*)" contains "([^"]*)"$`, shared.theFileContains)
}

func (c *sharedContext) anEmptyWorkingDirectory() error {
	dir, err := os.MkdirTemp("", "planview-features-*")
	if err != nil {
		return err
	}
	start, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := os.Chdir(dir); err != nil {
		return err
	}
	c.tempDir, c.startDir = dir, start
	return nil
}

func (c *sharedContext) aFileContaining(name string, content *godog.DocString) error {
	if c.tempDir == "" {
		return fmt.Errorf("no working directory")
	}
	path := filepath.Join(c.tempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content.Content+"\n"), 0644)
}

func (c *sharedContext) iRunPlanview(args string) error {
	root := cli.NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(strings.Fields(args))
	c.cmdErr = root.Execute()
	c.output = buf.String()
	return nil
}

func (c *sharedContext) theCommandSucceeds() error {
	if c.cmdErr != nil {
		return fmt.Errorf("command failed: %v\n%s", c.cmdErr, c.output)
	}
	return nil
}

func (c *sharedContext) theCommandFails() error {
	if c.cmdErr == nil {
		return fmt.Errorf("expected command to fail, output:\n%s", c.output)
	}
	return nil
}

func (c *sharedContext) theOutputContains(text string) error {
	if !strings.Contains(c.output, text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, c.output)
	}
	return nil
}

func (c *sharedContext) theErrorMentions(text string) error {
	if c.cmdErr == nil {
		return fmt.Errorf("expected an error mentioning %q", text)
	}
	if !strings.Contains(c.cmdErr.Error(), text) && !strings.Contains(c.output, text) {
		return fmt.Errorf("expected error to mention %q, got: %v\n%s", text, c.cmdErr, c.output)
	}
	return nil
}

func (c *sharedContext) theFileExists(name string) error {
	if _, err := os.Stat(filepath.Join(c.tempDir, name)); err != nil {
		return fmt.Errorf("expected %s to exist: %w", name, err)
	}
	return nil
}

func (c *sharedContext) theFileContains(name, text string) error {
	data, err := os.ReadFile(filepath.Join(c.tempDir, name))
	if err != nil {
		return err
	}
	if !strings.Contains(string(data), text) {
		return fmt.Errorf("expected %s to contain %q", name, text)
	}
	return nil
}
