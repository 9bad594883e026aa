package output

import (
	"context"
	"fmt"
	"io"
	"sort"

	"worktally/pkg/aggregator"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
// With a login filter set in the report metadata, a single total line is
// printed for that login and only its diagnostics are listed (matched on the
// structured login field). Without a filter, all logins are listed sorted
// lexicographically.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}

	if report.Metadata.Login != "" {
		f.formatSingleUser(report, w)
	} else {
		f.formatAllUsers(report, w)
	}

	if f.opts.Verbose {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Records processed: %d\n", report.Summary.RecordsProcessed)
		fmt.Fprintf(w, "Matched pairs:     %d\n", report.Summary.MatchedPairs)
		for _, src := range report.Metadata.Sources {
			fmt.Fprintf(w, "Source: %s\n", src)
		}
	}

	return nil
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "worktally: %d user(s), %d matched pair(s), %d warning(s)\n",
		report.Summary.Users,
		report.Summary.MatchedPairs,
		report.Summary.Diagnostics)
	return nil
}

func (f *TextFormatter) formatSingleUser(report *Report, w io.Writer) {
	login := report.Metadata.Login
	fmt.Fprintf(w, "Total work time for %s: %s\n", login, FormatDuration(report.Totals[login]))

	diags := aggregator.FilterByLogin(report.Diagnostics, login)
	if len(diags) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, d := range diags {
			fmt.Fprintf(w, "  - %s\n", d)
		}
	}
}

func (f *TextFormatter) formatAllUsers(report *Report, w io.Writer) {
	if len(report.Totals) > 0 {
		fmt.Fprintln(w, "Total work time per user:")

		logins := make([]string, 0, len(report.Totals))
		for login := range report.Totals {
			logins = append(logins, login)
		}
		sort.Strings(logins)

		for _, login := range logins {
			fmt.Fprintf(w, "  %s: %s\n", login, FormatDuration(report.Totals[login]))
		}
	} else {
		fmt.Fprintln(w, "No complete Start/Stop intervals found.")
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings (Start without Stop or Stop without Start):")
		for _, d := range report.Diagnostics {
			fmt.Fprintf(w, "  - %s\n", d)
		}
	}
}

// FormatDuration renders seconds as zero-padded HH:MM:SS.
// Fractional seconds are truncated; negative totals get a sign prefix.
func FormatDuration(seconds float64) string {
	total := int64(seconds)
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	return fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, secs)
}
