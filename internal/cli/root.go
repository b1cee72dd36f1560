// Package cli wires the planview commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drew/planview/internal/config"
	"github.com/drew/planview/internal/logging"
)

// globalOptions are the flags shared by every command
type globalOptions struct {
	configPath string
	verbose    bool
	noColor    bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "planview",
		Short: "Render plan timelines",
		Long: `planview renders plans as Gantt timelines. Steps already committed to
execution (the plan head) are drawn apart from the speculative relaxed plan,
with the planner's helpful actions marked at the current time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default: planview.toml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newRenderCmd(opts),
		newShowCmd(opts),
		newServeCmd(opts),
		newValidateCmd(opts),
		newInitCmd(),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// settings loads the merged configuration and the logger for a command
func (o *globalOptions) settings(cmd *cobra.Command) (config.Config, *logging.Logger, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	merged := config.MergeWithDefaults(cfg)

	result, err := config.ValidateConfig(&merged)
	if err != nil {
		return config.Config{}, nil, err
	}
	if !result.Valid {
		return config.Config{}, nil, fmt.Errorf("invalid configuration: %v", result.Errors[0])
	}

	level := merged.Logging.Level
	if o.verbose {
		level = logging.LevelDebug
	}
	logger := logging.NewLogger(cmd.ErrOrStderr(), level, merged.Logging.Format)
	for _, w := range result.Warnings {
		logger.Warn("configuration warning", "field", w.Field, "message", w.Message)
	}
	return merged, logger, nil
}
