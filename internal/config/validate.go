package config

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/drew/planview/internal/logging"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult holds the results of config validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
}

func (r *ValidationResult) addError(field, format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ValidateConfig validates an already-loaded config
func ValidateConfig(cfg *Config) (*ValidationResult, error) {
	result := newResult()

	if cfg == nil {
		return result, nil
	}

	validateView(&cfg.View, result)
	validateVisibility(&cfg.Visibility, result)
	validateOutput(&cfg.Output, result)
	validateLogging(&cfg.Logging, result)

	return result, nil
}

// ValidateConfigFile validates a TOML config file
func ValidateConfigFile(path string) (*ValidationResult, error) {
	result := newResult()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	metadata, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		result.addError("", "Invalid TOML syntax: %v", err)
		return result, nil
	}

	for _, key := range metadata.Undecoded() {
		result.addError(key.String(), "Unknown configuration field")
	}

	validateView(&cfg.View, result)
	validateVisibility(&cfg.Visibility, result)
	validateOutput(&cfg.Output, result)
	validateLogging(&cfg.Logging, result)

	return result, nil
}

// validateView checks the geometry. Zero means unset and falls back to the default.
func validateView(view *ViewConfig, result *ValidationResult) {
	if view.Epsilon < 0 || math.IsNaN(view.Epsilon) {
		result.addError("view.epsilon", "Epsilon must be positive, got %v", view.Epsilon)
	}
	if view.DisplayWidth < 0 || math.IsNaN(view.DisplayWidth) {
		result.addError("view.displayWidth", "Display width must be positive, got %v", view.DisplayWidth)
	}
	if view.RowHeight < 0 || math.IsNaN(view.RowHeight) {
		result.addError("view.rowHeight", "Row height must be positive, got %v", view.RowHeight)
	}
	if view.Epsilon >= 1 {
		result.addWarning("view.epsilon", "Epsilon of %v will make instantaneous actions look durative", view.Epsilon)
	}
	if view.DisableSwimlanes {
		result.addWarning("view.disableSwimlanes", "Swimlanes are not rendered; this setting has no effect")
	}
}

func validateVisibility(vis *VisibilityConfig, result *ValidationResult) {
	for i, pattern := range vis.ExcludeActions {
		field := fmt.Sprintf("visibility.excludeActions[%d]", i)
		if strings.TrimSpace(pattern) == "" {
			result.addWarning(field, "Empty pattern is ignored")
			continue
		}
		if !doublestar.ValidatePattern(strings.ToLower(pattern)) {
			result.addError(field, "Invalid glob pattern '%s'", pattern)
		}
	}
}

func validateOutput(out *OutputConfig, result *ValidationResult) {
	if out.Format != "" {
		validFormats := []string{"html", "svg", "text"}
		if !contains(validFormats, out.Format) {
			result.addError("output.format", "Invalid output format '%s'. Valid options: %s",
				out.Format, strings.Join(validFormats, ", "))
		}
	}
}

func validateLogging(lc *LoggingConfig, result *ValidationResult) {
	if lc.Level != "" {
		// levels are matched case-insensitively, as the logger parses them
		validLevels := logging.ValidLevels()
		if !contains(validLevels, strings.ToUpper(lc.Level)) {
			result.addError("logging.level", "Invalid log level '%s'. Valid options: %s",
				lc.Level, strings.ToLower(strings.Join(validLevels, ", ")))
		}
	}
	if lc.Format != "" {
		validFormats := []string{logging.FormatText, logging.FormatJSON}
		if !contains(validFormats, lc.Format) {
			result.addError("logging.format", "Invalid log format '%s'. Valid options: %s",
				lc.Format, strings.Join(validFormats, ", "))
		}
	}
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// PrintValidationResult prints the validation result in a human-readable format
func PrintValidationResult(w io.Writer, path string, result *ValidationResult) {
	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(w, "📋 Validating: %s\n", path)

	if result.Valid && len(result.Warnings) == 0 {
		fmt.Fprintln(w, "✅ Configuration is valid!")
		fmt.Fprintln(w)
		return
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "\n❌ Found %d error(s):\n", len(result.Errors))
		printEntries(w, result.Errors)
		fmt.Fprintln(w)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "⚠️  Found %d warning(s):\n", len(result.Warnings))
		printEntries(w, result.Warnings)
		fmt.Fprintln(w)
	}

	if !result.Valid {
		fmt.Fprintln(w, "❌ Configuration is INVALID")
	} else {
		fmt.Fprintln(w, "✅ Configuration is valid (with warnings)")
	}
	fmt.Fprintln(w)
}

func printEntries(w io.Writer, entries []ValidationError) {
	for _, e := range entries {
		if e.Field != "" {
			fmt.Fprintf(w, "  • [%s] %s\n", e.Field, e.Message)
		} else {
			fmt.Fprintf(w, "  • %s\n", e.Message)
		}
	}
}
