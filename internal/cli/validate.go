package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drew/planview/internal/config"
)

func newValidateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [CONFIG...]",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				path := opts.configPath
				if path == "" {
					path = config.DefaultConfigFile
				}
				files = []string{path}
			}

			invalid := 0
			for _, path := range files {
				result, err := config.ValidateConfigFile(path)
				if err != nil {
					return err
				}
				config.PrintValidationResult(cmd.OutOrStdout(), path, result)
				if !result.Valid {
					invalid++
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d config file(s) invalid", invalid, len(files))
			}
			return nil
		},
	}
}
