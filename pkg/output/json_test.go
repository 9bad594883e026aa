package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestJSONFormatter_Format(t *testing.T) {
	report := NewReport(testResult(), "")
	var buf bytes.Buffer

	f := NewJSONFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded struct {
		Totals      map[string]float64 `json:"totals"`
		Diagnostics []struct {
			Kind      string `json:"kind"`
			Login     string `json:"login"`
			SessionID string `json:"session_id"`
		} `json:"diagnostics"`
		Summary Summary `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Totals["alice"] != 28800 {
		t.Errorf("totals[alice] = %v, want 28800", decoded.Totals["alice"])
	}
	if len(decoded.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %d, want 2", len(decoded.Diagnostics))
	}
	if decoded.Diagnostics[0].Kind != "stop_without_start" {
		t.Errorf("kind = %q, want stop_without_start", decoded.Diagnostics[0].Kind)
	}
	if decoded.Summary.Users != 2 || decoded.Summary.MatchedPairs != 2 {
		t.Errorf("unexpected summary %+v", decoded.Summary)
	}
}

func TestJSONFormatter_Quiet(t *testing.T) {
	report := NewReport(testResult(), "")
	var buf bytes.Buffer

	f := NewJSONFormatter(FormatOptions{Quiet: true})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("quiet output is not a summary: %v", err)
	}
	if summary.Diagnostics != 2 {
		t.Errorf("summary.Diagnostics = %d, want 2", summary.Diagnostics)
	}
}
