package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"worktally/pkg/config"
	"worktally/pkg/parser"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	ConfigPath string
}

// inspectSummary tallies what a scan of the log files found.
type inspectSummary struct {
	lines       int
	records     int
	shortLines  int
	badLines    int
	actions     map[string]int
	logins      map[string]int
	first, last time.Time
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <log-file>...",
		Short: "Scan session logs without aggregating",
		Long: `Scan log files and summarize what they contain, without matching sessions.

Reports record counts per action and per login, the covered time range,
and how many lines would be skipped as malformed. Useful for checking a
log file before running a report on it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (optional)")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
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

	line := parser.NewLineParser(cfg.LogFormat.Delimiter, cfg.LogFormat.TimestampLayout)
	summary := &inspectSummary{
		actions: make(map[string]int),
		logins:  make(map[string]int),
	}

	for _, file := range files {
		if err := inspectFile(file, line, summary); err != nil {
			return err
		}
	}

	printInspectSummary(cmd, files, summary)
	return nil
}

func inspectFile(path string, line *parser.LineParser, summary *inspectSummary) error {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}
		summary.lines++

		rec, err := line.Parse(text)
		if err != nil {
			if errors.Is(err, parser.ErrTooFewFields) {
				summary.shortLines++
			} else {
				summary.badLines++
			}
			continue
		}

		summary.records++
		summary.actions[rec.Action]++
		summary.logins[rec.Login]++
		if summary.first.IsZero() || rec.Timestamp.Before(summary.first) {
			summary.first = rec.Timestamp
		}
		if summary.last.IsZero() || rec.Timestamp.After(summary.last) {
			summary.last = rec.Timestamp
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

func printInspectSummary(cmd *cobra.Command, files []string, summary *inspectSummary) {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Files:   %d\n", len(files))
	fmt.Fprintf(w, "Lines:   %d\n", summary.lines)
	fmt.Fprintf(w, "Records: %d\n", summary.records)
	if summary.shortLines > 0 {
		fmt.Fprintf(w, "Skipped (fewer than four fields): %d\n", summary.shortLines)
	}
	if summary.badLines > 0 {
		fmt.Fprintf(w, "Skipped (bad timestamp): %d\n", summary.badLines)
	}

	if summary.records == 0 {
		return
	}

	const layout = "2006-01-02 15:04:05"
	fmt.Fprintf(w, "Range:   %s .. %s\n", summary.first.Format(layout), summary.last.Format(layout))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Actions:")
	for _, action := range sortedKeys(summary.actions) {
		fmt.Fprintf(w, "  %s: %d\n", action, summary.actions[action])
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Logins (%d):\n", len(summary.logins))
	for _, login := range sortedKeys(summary.logins) {
		fmt.Fprintf(w, "  %s: %d record(s)\n", login, summary.logins[login])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
