// Package parser provides session log reading and record parsing functionality.
package parser

import "time"

// Record represents a single session boundary event parsed from a log line.
type Record struct {
	// Login is the user identifier that issued the event.
	Login string

	// Action is the event kind, typically "Start" or "Stop".
	// Other values parse successfully but are never matched downstream.
	Action string

	// Timestamp is the naive wall-clock time of the event.
	Timestamp time.Time

	// SessionID is the opaque key pairing Start and Stop events.
	SessionID string

	// Source is the file path this record came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}
