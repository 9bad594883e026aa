package aggregator

import (
	"strings"
	"testing"
	"time"
)

func TestDiagnostic_String(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "stop without start",
			diag: Diagnostic{Kind: KindStopWithoutStart, Login: "bob", SessionID: "s2", Timestamp: ts},
			want: "Stop without Start for bob at 2024-01-01 10:00:00, session_id: s2",
		},
		{
			name: "login mismatch",
			diag: Diagnostic{Kind: KindLoginMismatch, Login: "mallory", SessionID: "s1", Timestamp: ts},
			want: "Stop for mallory at 2024-01-01 10:00:00: session_id s1 belongs to another user",
		},
		{
			name: "unterminated start",
			diag: Diagnostic{Kind: KindUnterminatedStart, Login: "alice", SessionID: "s3", Timestamp: ts},
			want: "Start without Stop for alice at 2024-01-01 10:00:00, session_id: s3",
		},
		{
			name: "negative duration",
			diag: Diagnostic{Kind: KindNegativeDuration, Login: "alice", SessionID: "s4", Timestamp: ts, Seconds: -3600},
			want: "Stop before Start for alice at 2024-01-01 10:00:00, session_id: s4 (-3600s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diag.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterByLogin(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	diags := []Diagnostic{
		{Kind: KindStopWithoutStart, Login: "alice", SessionID: "s1", Timestamp: ts},
		{Kind: KindUnterminatedStart, Login: "bob", SessionID: "s2", Timestamp: ts},
		{Kind: KindLoginMismatch, Login: "alice", SessionID: "s3", Timestamp: ts},
	}

	filtered := FilterByLogin(diags, "alice")
	if len(filtered) != 2 {
		t.Fatalf("Got %d diagnostics, want 2", len(filtered))
	}
	for _, d := range filtered {
		if d.Login != "alice" {
			t.Errorf("filtered diagnostic for %q, want alice only", d.Login)
		}
	}
}

func TestFilterByLogin_StructuralNotSubstring(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	// "ali" appears inside "alice"'s rendered text but the filter compares
	// the login field, not the message.
	diags := []Diagnostic{
		{Kind: KindStopWithoutStart, Login: "alice", SessionID: "s1", Timestamp: ts},
	}

	if got := FilterByLogin(diags, "ali"); len(got) != 0 {
		t.Errorf("Got %d diagnostics for substring login, want 0", len(got))
	}
	if !strings.Contains(diags[0].String(), "ali") {
		t.Fatal("test premise broken: rendered text should contain the substring")
	}
}
