package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"worktally/pkg/aggregator"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3661, "01:01:01"},
		{28800, "08:00:00"},
		{90000, "25:00:00"},
		{30.9, "00:00:30"},
		{-3600, "-01:00:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func testResult() *aggregator.Result {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return &aggregator.Result{
		Totals: map[string]float64{
			"bob":   1800,
			"alice": 28800,
		},
		Diagnostics: []aggregator.Diagnostic{
			{Kind: aggregator.KindStopWithoutStart, Login: "bob", SessionID: "s2", Timestamp: ts},
			{Kind: aggregator.KindUnterminatedStart, Login: "alice", SessionID: "s3", Timestamp: ts},
		},
		Metadata: aggregator.Metadata{
			Sources:          []string{"test.log"},
			RecordsProcessed: 6,
			MatchedPairs:     2,
			StartTime:        ts,
			EndTime:          ts.Add(5 * time.Millisecond),
		},
	}
}

func TestTextFormatter_AllUsers(t *testing.T) {
	report := NewReport(testResult(), "")
	var buf bytes.Buffer

	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "alice: 08:00:00") {
		t.Errorf("output missing alice total: %q", out)
	}
	if !strings.Contains(out, "bob: 00:30:00") {
		t.Errorf("output missing bob total: %q", out)
	}

	// Lexicographic order
	if strings.Index(out, "alice:") > strings.Index(out, "bob:") {
		t.Error("logins not sorted lexicographically")
	}

	if !strings.Contains(out, "Warnings") {
		t.Errorf("output missing warnings section: %q", out)
	}
	if !strings.Contains(out, "Stop without Start for bob") {
		t.Errorf("output missing diagnostic text: %q", out)
	}
}

func TestTextFormatter_SingleUser(t *testing.T) {
	report := NewReport(testResult(), "alice")
	var buf bytes.Buffer

	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Total work time for alice: 08:00:00") {
		t.Errorf("output missing filtered total: %q", out)
	}
	if !strings.Contains(out, "Start without Stop for alice") {
		t.Errorf("output missing alice diagnostic: %q", out)
	}
	if strings.Contains(out, "for bob") {
		t.Errorf("output leaks other login's diagnostic: %q", out)
	}
}

func TestTextFormatter_EmptyTotals(t *testing.T) {
	result := &aggregator.Result{Totals: map[string]float64{}}
	report := NewReport(result, "")
	var buf bytes.Buffer

	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), "No complete Start/Stop intervals found.") {
		t.Errorf("output missing empty notice: %q", buf.String())
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	report := NewReport(testResult(), "")
	var buf bytes.Buffer

	f := NewTextFormatter(FormatOptions{Quiet: true})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "2 user(s), 2 matched pair(s), 2 warning(s)") {
		t.Errorf("unexpected quiet output: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("quiet output should be one line: %q", out)
	}
}

func TestTextFormatter_Verbose(t *testing.T) {
	report := NewReport(testResult(), "")
	var buf bytes.Buffer

	f := NewTextFormatter(FormatOptions{Verbose: true})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Records processed: 6") {
		t.Errorf("verbose output missing statistics: %q", out)
	}
	if !strings.Contains(out, "Source: test.log") {
		t.Errorf("verbose output missing sources: %q", out)
	}
}
