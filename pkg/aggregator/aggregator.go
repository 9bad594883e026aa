// Package aggregator implements the session matching and duration
// aggregation pass over an ordered stream of Start/Stop records.
package aggregator

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"worktally/pkg/parser"
)

// Default action names matched by the aggregator.
const (
	DefaultStartAction = "Start"
	DefaultStopAction  = "Stop"
)

// Aggregator folds a record stream into per-login totals and diagnostics.
// It holds only configuration; all pass state is owned by a single Run call,
// so independent runs may execute concurrently.
type Aggregator struct {
	startAction string
	stopAction  string
	loginFilter string
}

// Option configures aggregator behavior.
type Option func(*Aggregator)

// WithLoginFilter restricts the pass to records of the given login.
// Filtering happens before the state machine: a Start by another login never
// occupies the open-session table, so a cross-user Stop against a
// filtered-out opener is reported as a Stop without Start, not a mismatch.
func WithLoginFilter(login string) Option {
	return func(a *Aggregator) {
		a.loginFilter = login
	}
}

// WithActions overrides the action names treated as session start and stop.
func WithActions(start, stop string) Option {
	return func(a *Aggregator) {
		a.startAction = start
		a.stopAction = stop
	}
}

// New creates an aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		startAction: DefaultStartAction,
		stopAction:  DefaultStopAction,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// openSession is one entry in the open-session table.
type openSession struct {
	login string
	start time.Time
}

// Result is the complete output of one aggregation pass.
type Result struct {
	// Totals maps login to accumulated seconds over all matched pairs.
	Totals map[string]float64

	// Diagnostics lists anomalies in the order they were detected.
	// Unterminated starts are appended at the end, sorted by session id.
	Diagnostics []Diagnostic

	// Metadata provides context about the pass.
	Metadata Metadata
}

// Metadata provides context about an aggregation pass.
type Metadata struct {
	// Sources lists the files records were read from, in first-seen order.
	Sources []string

	// RecordsProcessed is the number of records that reached the state
	// machine (after the login filter).
	RecordsProcessed int

	// RecordsFiltered is the number of records dropped by the login filter.
	RecordsFiltered int

	// MatchedPairs is the number of successfully matched Start/Stop pairs.
	MatchedPairs int

	// StartTime is when the pass began.
	StartTime time.Time

	// EndTime is when the pass completed.
	EndTime time.Time
}

// HasDiagnostics returns true if the pass detected any anomalies.
func (r *Result) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}

// Run consumes the source to exhaustion and returns totals and diagnostics.
//
// Per-record anomalies become diagnostics and never abort the pass; a source
// error aborts the pass and discards all totals. The state machine per
// session id: a Start unconditionally overwrites the open entry
// (last-Start-wins, the discarded Start is silent); a Stop from the opening
// login closes the entry and adds stop−start seconds to that login's total;
// a Stop from a different login records a mismatch and leaves the entry
// open; a Stop with no open entry records an orphan. Durations are not
// clamped: a Stop earlier than its Start contributes negative seconds and is
// flagged with a negative-duration diagnostic.
func (a *Aggregator) Run(ctx context.Context, source parser.RecordSource) (*Result, error) {
	open := make(map[string]openSession)
	result := &Result{
		Totals: make(map[string]float64),
		Metadata: Metadata{
			StartTime: time.Now(),
		},
	}

	sourcesSeen := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}

		if rec.Source != "" && !sourcesSeen[rec.Source] {
			sourcesSeen[rec.Source] = true
			result.Metadata.Sources = append(result.Metadata.Sources, rec.Source)
		}

		if a.loginFilter != "" && rec.Login != a.loginFilter {
			result.Metadata.RecordsFiltered++
			continue
		}

		result.Metadata.RecordsProcessed++
		a.process(rec, open, result)
	}

	a.finalize(open, result)
	result.Metadata.EndTime = time.Now()

	return result, nil
}

// process applies one record to the open-session table.
func (a *Aggregator) process(rec *parser.Record, open map[string]openSession, result *Result) {
	switch rec.Action {
	case a.startAction:
		// Last-Start-wins: an unmatched earlier Start is discarded silently.
		open[rec.SessionID] = openSession{login: rec.Login, start: rec.Timestamp}

	case a.stopAction:
		sess, ok := open[rec.SessionID]
		if !ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:      KindStopWithoutStart,
				Login:     rec.Login,
				SessionID: rec.SessionID,
				Timestamp: rec.Timestamp,
			})
			return
		}

		if sess.login != rec.Login {
			// The session stays open; a later correctly-attributed Stop
			// may still close it.
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:      KindLoginMismatch,
				Login:     rec.Login,
				SessionID: rec.SessionID,
				Timestamp: rec.Timestamp,
			})
			return
		}

		seconds := rec.Timestamp.Sub(sess.start).Seconds()
		result.Totals[rec.Login] += seconds
		result.Metadata.MatchedPairs++
		delete(open, rec.SessionID)

		if seconds < 0 {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:      KindNegativeDuration,
				Login:     rec.Login,
				SessionID: rec.SessionID,
				Timestamp: rec.Timestamp,
				Seconds:   seconds,
			})
		}

	default:
		// Only start and stop actions participate in matching.
	}
}

// finalize converts every still-open session into an unterminated-start
// diagnostic, sorted by session id for deterministic output.
func (a *Aggregator) finalize(open map[string]openSession, result *Result) {
	ids := make([]string, 0, len(open))
	for id := range open {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		sess := open[id]
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:      KindUnterminatedStart,
			Login:     sess.login,
			SessionID: id,
			Timestamp: sess.start,
		})
	}
}
