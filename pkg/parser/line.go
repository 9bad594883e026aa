package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrTooFewFields is returned by LineParser.Parse for lines with fewer than
// four fields. Such lines are skipped silently, with no warning.
var ErrTooFewFields = errors.New("record has fewer than four fields")

// LineParser converts one raw log line into a Record.
//
// Lines are split on a fixed delimiter; each field is trimmed of surrounding
// whitespace and then of surrounding double quotes, so both quoted and
// unquoted fields are accepted. The first four fields map positionally to
// login, action, timestamp and session id; extra trailing fields are ignored.
type LineParser struct {
	delimiter string
	layout    string
}

// NewLineParser creates a line parser for the given field delimiter and
// Go time layout.
func NewLineParser(delimiter, layout string) *LineParser {
	return &LineParser{
		delimiter: delimiter,
		layout:    layout,
	}
}

// Parse parses one raw line into a Record.
// Returns ErrTooFewFields when the line has fewer than four fields, or a
// timestamp parse error when the third field does not match the layout.
// Source and LineNum are left for the caller to fill in.
func (p *LineParser) Parse(line string) (*Record, error) {
	fields := p.splitFields(line)
	if len(fields) < 4 {
		return nil, ErrTooFewFields
	}

	ts, err := time.Parse(p.layout, fields[2])
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", fields[2], err)
	}

	return &Record{
		Login:     fields[0],
		Action:    fields[1],
		Timestamp: ts,
		SessionID: fields[3],
	}, nil
}

// splitFields splits a line on the delimiter and strips whitespace and
// surrounding quote characters from each field.
func (p *LineParser) splitFields(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), p.delimiter)
	for i, part := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(part), `"`)
	}
	return parts
}
