// Package output provides formatting and output generation for work time reports.
package output

import (
	"time"

	"worktally/pkg/aggregator"
)

// Report is the complete output of a work time run.
type Report struct {
	// Totals maps login to accumulated seconds.
	Totals map[string]float64 `json:"totals"`

	// Diagnostics lists detected session anomalies.
	Diagnostics []aggregator.Diagnostic `json:"diagnostics"`

	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// Users is the number of logins with accumulated time.
	Users int `json:"users"`

	// MatchedPairs is the number of successfully matched Start/Stop pairs.
	MatchedPairs int `json:"matched_pairs"`

	// Diagnostics is the number of detected anomalies.
	Diagnostics int `json:"diagnostics"`

	// RecordsProcessed is the number of records that reached the aggregator.
	RecordsProcessed int `json:"records_processed"`

	// RecordsFiltered is the number of records dropped by the login filter.
	RecordsFiltered int `json:"records_filtered,omitempty"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Sources lists the log files that were read.
	Sources []string `json:"sources"`

	// Login is the login filter that was applied, if any.
	Login string `json:"login,omitempty"`

	// AnalyzedAt is when the run was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the pass took.
	Duration time.Duration `json:"duration_ns"`
}

// NewReport creates a Report from an aggregation result.
// login records the filter that was applied, empty for an unfiltered run.
func NewReport(result *aggregator.Result, login string) *Report {
	return &Report{
		Totals:      result.Totals,
		Diagnostics: result.Diagnostics,
		Summary: Summary{
			Users:            len(result.Totals),
			MatchedPairs:     result.Metadata.MatchedPairs,
			Diagnostics:      len(result.Diagnostics),
			RecordsProcessed: result.Metadata.RecordsProcessed,
			RecordsFiltered:  result.Metadata.RecordsFiltered,
		},
		Metadata: Metadata{
			Sources:    result.Metadata.Sources,
			Login:      login,
			AnalyzedAt: result.Metadata.EndTime,
			Duration:   result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
	}
}

// HasDiagnostics returns true if any anomalies were detected.
func (r *Report) HasDiagnostics() bool {
	return r.Summary.Diagnostics > 0
}
