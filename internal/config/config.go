// Package config handles loading, validation, and merging of planview configuration files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/drew/planview/internal/model"
)

// DefaultConfigFile is looked up in the working directory when no path is given
const DefaultConfigFile = "planview.toml"

// Config represents the complete planview configuration
type Config struct {
	View       ViewConfig       `toml:"view"`
	Visibility VisibilityConfig `toml:"visibility"`
	Output     OutputConfig     `toml:"output"`
	Serve      ServeConfig      `toml:"serve"`
	Logging    LoggingConfig    `toml:"logging"`
}

// ViewConfig holds the timeline geometry
type ViewConfig struct {
	// Fallback duration for instantaneous or durationless actions
	Epsilon float64 `toml:"epsilon" doc:"Fallback duration for instantaneous or durationless actions"`
	// Pixels spanning time 0..makespan
	DisplayWidth float64 `toml:"displayWidth" doc:"Width in pixels spanning time 0 to the plan makespan"`
	// Height of one row in pixels
	RowHeight float64 `toml:"rowHeight" doc:"Height of one timeline row in pixels"`
	// Render action labels as plain text
	SelfContained bool `toml:"selfContained" doc:"Render action labels as plain text without cross-reference links"`
	// Reserved for swimlane rendering
	DisableSwimlanes bool `toml:"disableSwimlanes" doc:"Reserved; swimlanes are not rendered"`
}

// VisibilityConfig decides which steps are displayed
type VisibilityConfig struct {
	// Glob patterns matched against the lower-cased full action name
	ExcludeActions []string `toml:"excludeActions" doc:"Glob patterns of actions to hide, matched against the lower-cased action name and objects"`
}

// OutputConfig controls the render command
type OutputConfig struct {
	// Output format: html, svg or text
	Format string `toml:"format" doc:"Output format: html, svg or text" enum:"html,svg,text"`
	// Directory rendered files are written to
	Dir string `toml:"dir" doc:"Directory rendered files are written to"`
	// Page title for HTML output
	Title string `toml:"title" doc:"Page title for HTML output"`
}

// ServeConfig controls the serve command
type ServeConfig struct {
	// Listen address
	Addr string `toml:"addr" doc:"Listen address of the plan viewer"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Log level: debug, info, warn or error
	Level string `toml:"level" doc:"Log level: debug, info, warn or error" enum:"debug,info,warn,error"`
	// Log format: text or json
	Format string `toml:"format" doc:"Log format: text or json" enum:"text,json"`
}

// LoadConfig loads configuration from a TOML file.
// An empty path looks for planview.toml and returns nil, nil when it is absent;
// an explicit path that does not exist is an error.
func LoadConfig(path string) (*Config, error) {
	explicitPath := path != ""
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicitPath {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, nil
	}

	var cfg Config
	metadata, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	undecoded := metadata.Undecoded()
	if len(undecoded) > 0 {
		var unknownFields []string
		for _, key := range undecoded {
			unknownFields = append(unknownFields, key.String())
		}
		return nil, fmt.Errorf("unknown fields in config: %s", strings.Join(unknownFields, ", "))
	}

	return &cfg, nil
}

// ViewOptions converts the view section into renderer options
func (c *Config) ViewOptions() model.ViewOptions {
	return model.ViewOptions{
		Epsilon:          c.View.Epsilon,
		DisplayWidth:     c.View.DisplayWidth,
		RowHeight:        c.View.RowHeight,
		SelfContained:    c.View.SelfContained,
		DisableSwimlanes: c.View.DisableSwimlanes,
	}
}

// GenerateDefaultConfig creates a minimal planview.toml file
func GenerateDefaultConfig(path string) (err error) {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", cerr)
		}
	}()

	content := `# planview configuration file

[view]
epsilon = 0.001
displayWidth = 300
rowHeight = 20

[visibility]
excludeActions = []

[output]
format = "html"
dir = "."
`

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
