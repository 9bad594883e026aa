package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"worktally/internal/history"
	"worktally/pkg/config"
	"worktally/pkg/output"
)

// HistoryOptions holds command-line options for the history command.
type HistoryOptions struct {
	Limit      int
	Totals     bool
	ConfigPath string
	DBPath     string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded report runs",
		Long: `List recent report runs recorded in the history database.

Each report run is stored with its sources, login filter, user count and
warning count. Use --totals to also print each run's per-login totals.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "Number of runs to list")
	cmd.Flags().BoolVar(&opts.Totals, "totals", false, "Show per-login totals for each run")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (optional)")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "History database path (overrides config)")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	path := cfg.History.Path
	if opts.DBPath != "" {
		path = opts.DBPath
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(opts.Limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return nil
	}

	for _, run := range runs {
		filter := ""
		if run.LoginFilter != "" {
			filter = fmt.Sprintf(", login=%s", run.LoginFilter)
		}
		fmt.Fprintf(w, "#%d  %s  %s  %d user(s), %d warning(s)%s\n",
			run.ID,
			run.RanAt.Format("2006-01-02 15:04:05"),
			strings.Join(run.Sources, ","),
			run.Users,
			run.Diagnostics,
			filter)

		if opts.Totals {
			totals, err := store.RunTotals(run.ID)
			if err != nil {
				return err
			}
			for _, t := range totals {
				fmt.Fprintf(w, "    %s: %s\n", t.Login, output.FormatDuration(t.Seconds))
			}
		}
	}

	return nil
}
