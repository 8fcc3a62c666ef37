// ============================================================================
// epub-pager CLI - Command Line Interface
// ============================================================================
//
// Package: internal/cli
// File: cli.go
// Purpose: Cobra command tree for paginating one ePub per invocation
//
// Command Structure:
//   epub-pager [flags] <ePub_file>   # Paginate one book
//   ├── report <summary.json>        # Re-render the report of a saved run
//   ├── --version
//   └── --help
//
// Configuration:
//   -c, --cfg <file>   JSON (or YAML) file that replaces every option flag
//   --<option>         one flag per option, --no-<option> for booleans
//
// Run Flow:
//   1. Resolve configuration (file wholesale, else defaults + flags)
//   2. Invoke the engine, with epubcheck before and after when configured
//   3. Optionally write the summary JSON and the metrics textfile
//   4. Print the report
//
// Error Handling:
//   - Bad flags or a malformed config file stop the run before the engine
//   - Engine or validator failures abort the job; no report is printed
//
// ============================================================================

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ChuLiYu/epub-pager/internal/config"
	"github.com/ChuLiYu/epub-pager/internal/engine"
	"github.com/ChuLiYu/epub-pager/internal/job"
	"github.com/ChuLiYu/epub-pager/internal/metrics"
	"github.com/ChuLiYu/epub-pager/internal/report"
	"github.com/ChuLiYu/epub-pager/internal/summary"
	"github.com/ChuLiYu/epub-pager/internal/validator"
)

// app holds the flags that are not configuration options.
type app struct {
	cfgPath     string
	enginePath  string
	summaryPath string
	metricsPath string

	level *slog.LevelVar
}

func BuildCLI() *cobra.Command {
	a := &app{level: new(slog.LevelVar)}

	rootCmd := &cobra.Command{
		Use:   "epub-pager [flags] <ePub_file>",
		Short: "Paginate an ePub file",
		Long: `epub-pager paginates one ePub file with an external pagination engine
and compares epubcheck results of the original and the paginated book.`,
		Version:      "1.0.0",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.paginate(cmd, args[0])
		},
	}

	fs := rootCmd.Flags()
	fs.StringVarP(&a.cfgPath, "cfg", "c", "", "path to configuration file")
	fs.StringVar(&a.enginePath, "engine", engine.DefaultPath, "pagination engine executable")
	fs.StringVar(&a.summaryPath, "summary", "", "write the job result as JSON to this file")
	fs.StringVar(&a.metricsPath, "metrics_file", "", "write job metrics in Prometheus text format to this file")
	registerOptionFlags(fs)

	rootCmd.AddCommand(buildReportCommand())

	return rootCmd
}

func buildReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <summary.json>",
		Short: "Print the report of a saved summary",
		Long:  "Load a summary written with --summary and print its report again.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showReport(cmd.OutOrStdout(), args[0])
		},
	}
	return cmd
}

func (a *app) newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: a.level}))
}

func (a *app) paginate(cmd *cobra.Command, document string) error {
	logger := a.newLogger(cmd.ErrOrStderr())

	flags, err := flagRecord(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, _, err := config.NewResolver(config.Defaults(), logger).Resolve(flags, a.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config: %w", err)
	}
	if cfg.Bool("DEBUG") {
		a.level.Set(slog.LevelDebug)
	}

	var (
		reg       *prometheus.Registry
		collector *metrics.Collector
	)
	if a.metricsPath != "" {
		reg = prometheus.NewRegistry()
		collector = metrics.NewCollector(reg)
	}

	inv := job.NewInvoker(engine.NewExec(a.enginePath),
		job.WithValidator(validator.NewEpubcheck),
		job.WithMetrics(collector),
		job.WithLogger(logger))

	res, jobErr := inv.Invoke(cmd.Context(), document, cfg)

	if reg != nil {
		if err := metrics.WriteTextfile(a.metricsPath, reg); err != nil {
			logger.Error("failed to write metrics", "path", a.metricsPath, "error", err)
		}
	}
	if jobErr != nil {
		return jobErr
	}

	if a.summaryPath != "" {
		if err := summary.NewStore(a.summaryPath).Write(res); err != nil {
			return fmt.Errorf("failed to save summary: %w", err)
		}
		logger.Info("summary written", "path", a.summaryPath)
	}

	return report.Render(cmd.OutOrStdout(), res, report.Aggregate(res))
}

func showReport(w io.Writer, path string) error {
	res, err := summary.NewStore(path).Load()
	if err != nil {
		return fmt.Errorf("failed to load summary: %w", err)
	}
	return report.Render(w, res, report.Aggregate(res))
}
