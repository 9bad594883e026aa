package aggregator

import (
	"fmt"
	"time"
)

// DiagnosticKind classifies a session anomaly.
type DiagnosticKind string

const (
	// KindStopWithoutStart is a Stop whose session id has no open Start.
	KindStopWithoutStart DiagnosticKind = "stop_without_start"

	// KindLoginMismatch is a Stop whose session id was opened by a
	// different login. The session stays open.
	KindLoginMismatch DiagnosticKind = "login_mismatch"

	// KindUnterminatedStart is a Start still open at end of stream.
	KindUnterminatedStart DiagnosticKind = "unterminated_start"

	// KindNegativeDuration is a matched pair whose Stop precedes its Start.
	// The negative duration is still added to the login's total.
	KindNegativeDuration DiagnosticKind = "negative_duration"
)

// Diagnostic is a structured description of one session anomaly.
// Login is carried as a field rather than only in rendered text so callers
// can filter diagnostics without substring matching.
type Diagnostic struct {
	Kind      DiagnosticKind `json:"kind"`
	Login     string         `json:"login"`
	SessionID string         `json:"session_id"`
	Timestamp time.Time      `json:"timestamp"`

	// Seconds is the signed duration of the pair, set only for
	// negative-duration diagnostics.
	Seconds float64 `json:"seconds,omitempty"`
}

const timestampFormat = "2006-01-02 15:04:05"

// String renders the diagnostic as a human-readable message.
func (d Diagnostic) String() string {
	ts := d.Timestamp.Format(timestampFormat)
	switch d.Kind {
	case KindStopWithoutStart:
		return fmt.Sprintf("Stop without Start for %s at %s, session_id: %s",
			d.Login, ts, d.SessionID)
	case KindLoginMismatch:
		return fmt.Sprintf("Stop for %s at %s: session_id %s belongs to another user",
			d.Login, ts, d.SessionID)
	case KindUnterminatedStart:
		return fmt.Sprintf("Start without Stop for %s at %s, session_id: %s",
			d.Login, ts, d.SessionID)
	case KindNegativeDuration:
		return fmt.Sprintf("Stop before Start for %s at %s, session_id: %s (%.0fs)",
			d.Login, ts, d.SessionID, d.Seconds)
	default:
		return fmt.Sprintf("%s for %s, session_id: %s", d.Kind, d.Login, d.SessionID)
	}
}

// FilterByLogin returns the diagnostics whose Login field equals login.
func FilterByLogin(diags []Diagnostic, login string) []Diagnostic {
	filtered := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Login == login {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
