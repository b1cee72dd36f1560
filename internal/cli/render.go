package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/drew/planview/internal/config"
	"github.com/drew/planview/internal/logging"
	"github.com/drew/planview/internal/model"
	"github.com/drew/planview/internal/planfile"
	"github.com/drew/planview/internal/report"
	"github.com/drew/planview/internal/ui"
)

// Columns used for text output written to files
const textColumns = 100

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var format, outDir string

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Render plan files to HTML, SVG or text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			if format != "" {
				cfg.Output.Format = format
			}
			if outDir != "" {
				cfg.Output.Dir = outDir
			}
			result, err := config.ValidateConfig(&cfg)
			if err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("invalid flags: %v", result.Errors[0])
			}

			colors := ui.NewColors(cmd.OutOrStdout(), !opts.noColor && ui.IsColorEnabled(os.Stdout))
			written, err := renderFiles(cmd.Context(), args, cfg, logger)
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", colors.Green("✓"), path)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: html, svg, text (overrides config)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory (overrides config)")
	return cmd
}

// renderFiles renders every input concurrently and returns the written
// paths in input order
func renderFiles(ctx context.Context, inputs []string, cfg config.Config, logger *logging.Logger) ([]string, error) {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	pred, err := cfg.Predicate()
	if err != nil {
		return nil, err
	}
	opts := report.Options{
		Title:     cfg.Output.Title,
		View:      cfg.ViewOptions(),
		Predicate: pred,
		Logger:    logger,
	}

	outputs := make([][]string, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log := logger.With("file", input)
			paths, err := renderFile(input, cfg.Output, opts, log)
			if err != nil {
				return err
			}
			log.Info("rendered plan file", "outputs", len(paths))
			outputs[i] = paths
			return nil
		})
	}
	err = g.Wait()

	var written []string
	for _, paths := range outputs {
		written = append(written, paths...)
	}
	return written, err
}

func renderFile(input string, out config.OutputConfig, opts report.Options, logger *logging.Logger) ([]string, error) {
	plans, err := planfile.Load(input)
	if err != nil {
		return nil, err
	}
	opts.Logger = logger

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	switch out.Format {
	case "svg":
		var paths []string
		for i, plan := range plans {
			name := base + ".svg"
			if len(plans) > 1 {
				name = fmt.Sprintf("%s-%d.svg", base, i+1)
			}
			path := filepath.Join(out.Dir, name)
			if err := writeFile(path, func(w io.Writer) error {
				return report.WriteSVG(w, plan, i, opts)
			}); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	case "text":
		path := filepath.Join(out.Dir, base+".txt")
		gantt := ui.NewGantt(ui.NewColors(io.Discard, false), opts.View, textColumns, logger)
		err := writeFile(path, func(w io.Writer) error {
			return renderGantt(w, gantt, plans, opts)
		})
		return []string{path}, err
	default:
		path := filepath.Join(out.Dir, base+".html")
		err := writeFile(path, func(w io.Writer) error {
			return report.WriteHTML(w, plans, opts)
		})
		return []string{path}, err
	}
}

func renderGantt(w io.Writer, gantt *ui.Gantt, plans []*model.Plan, opts report.Options) error {
	for i, plan := range plans {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := gantt.Render(w, plan, i, opts.Predicate); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
