package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"worktally/internal/history"
	"worktally/pkg/aggregator"
	"worktally/pkg/config"
	"worktally/pkg/output"
	"worktally/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ReportOptions holds command-line options for the report command.
type ReportOptions struct {
	Login      string
	Output     string
	Verbose    bool
	Quiet      bool
	ConfigPath string

	NoHistory   bool
	HistoryPath string
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report <log-file>...",
		Short: "Compute per-user work time from session logs",
		Long: `Compute total work time per user by matching Start/Stop session records.

Reads delimited log files of the form:

  "login";"action";"YYYY-MM-DD HH:MM:SS";"session_id"

and reports accumulated time per login plus session anomalies: stops
without a matching start, starts never closed, session ids closed by a
different user, and stop-before-start pairs.

Exit codes:
  0 - Clean run, no anomalies
  1 - Session anomalies detected
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Login, "login", "l", "", "Only process records for this login")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show pass statistics and sources")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (optional)")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record this run in the history database")
	cmd.Flags().StringVar(&opts.HistoryPath, "history-db", "", "History database path (overrides config)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string, opts *ReportOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding log sources: %w", err)
	}

	report, err := runPass(ctx, cfg, files, opts.Login, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Recording failures warn but never fail the report.
	if !opts.NoHistory {
		recordRun(cmd, cfg, opts, report)
	}

	if report.HasDiagnostics() {
		ExitCode = 1
	}

	return nil
}

// runPass wires parser and aggregator for one pass over the given files.
func runPass(ctx context.Context, cfg *config.Config, files []string, login string, warn io.Writer) (*output.Report, error) {
	line := parser.NewLineParser(cfg.LogFormat.Delimiter, cfg.LogFormat.TimestampLayout)
	source := parser.NewFileSource(files, line, parser.WithWarnings(warn))
	defer source.Close()

	aggOpts := []aggregator.Option{
		aggregator.WithActions(cfg.LogFormat.StartAction, cfg.LogFormat.StopAction),
	}
	if login != "" {
		aggOpts = append(aggOpts, aggregator.WithLoginFilter(login))
	}

	result, err := aggregator.New(aggOpts...).Run(ctx, source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("log file not found: %w", err)
		}
		return nil, fmt.Errorf("processing log: %w", err)
	}

	return output.NewReport(result, login), nil
}

func createFormatter(opts *ReportOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// recordRun stores the report in the history database.
func recordRun(cmd *cobra.Command, cfg *config.Config, opts *ReportOptions, report *output.Report) {
	path := cfg.History.Path
	if opts.HistoryPath != "" {
		path = opts.HistoryPath
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: history disabled: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(report); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: recording run: %v\n", err)
	}
}
