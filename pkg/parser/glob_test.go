package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandGlobs_Literal(t *testing.T) {
	// A path that matches nothing comes back as-is so opening it later
	// produces a proper file-not-found error.
	paths, err := ExpandGlobs([]string{"/nonexistent/sessions.log"})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(paths) != 1 || paths[0] != "/nonexistent/sessions.log" {
		t.Errorf("paths = %v, want literal passthrough", paths)
	}
}

func TestExpandGlobs_Pattern(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.log", "b.log", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := ExpandGlobs([]string{filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Got %d paths, want 2: %v", len(paths), paths)
	}
	if paths[0] != filepath.Join(dir, "a.log") || paths[1] != filepath.Join(dir, "b.log") {
		t.Errorf("paths not sorted: %v", paths)
	}
}

func TestExpandGlobs_Dedupe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.log")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ExpandGlobs([]string{path, filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("Got %d paths, want 1 after dedupe: %v", len(paths), paths)
	}
}

func TestExpandGlobs_InvalidPattern(t *testing.T) {
	if _, err := ExpandGlobs([]string{"[unclosed"}); err == nil {
		t.Error("ExpandGlobs() expected error for invalid pattern")
	}
}
