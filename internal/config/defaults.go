package config

import "github.com/drew/planview/internal/model"

// GetDefaults returns the default configuration
func GetDefaults() Config {
	view := model.DefaultViewOptions()
	return Config{
		View: ViewConfig{
			Epsilon:      view.Epsilon,
			DisplayWidth: view.DisplayWidth,
			RowHeight:    view.RowHeight,
		},
		Visibility: VisibilityConfig{
			ExcludeActions: []string{},
		},
		Output: OutputConfig{
			Format: "html",
			Dir:    ".",
			Title:  "Plan",
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// MergeWithDefaults fills unset fields of cfg from the defaults
func MergeWithDefaults(cfg *Config) Config {
	defaults := GetDefaults()

	if cfg == nil {
		return defaults
	}

	if cfg.View.Epsilon == 0 {
		cfg.View.Epsilon = defaults.View.Epsilon
	}
	if cfg.View.DisplayWidth == 0 {
		cfg.View.DisplayWidth = defaults.View.DisplayWidth
	}
	if cfg.View.RowHeight == 0 {
		cfg.View.RowHeight = defaults.View.RowHeight
	}
	if cfg.Visibility.ExcludeActions == nil {
		cfg.Visibility.ExcludeActions = defaults.Visibility.ExcludeActions
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = defaults.Output.Format
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaults.Output.Dir
	}
	if cfg.Output.Title == "" {
		cfg.Output.Title = defaults.Output.Title
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = defaults.Serve.Addr
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}

	return *cfg
}
