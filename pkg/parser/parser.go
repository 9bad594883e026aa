package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// FileSource implements RecordSource for reading from session log files.
// Files are read in the order given; within a file, records are returned
// in line order.
type FileSource struct {
	files []string
	line  *LineParser
	warn  io.Writer // nil means skip malformed lines silently

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// FileSourceOption configures a FileSource.
type FileSourceOption func(*FileSource)

// WithWarnings makes the source write a human-readable warning to w for each
// line whose timestamp fails to parse. Lines with fewer than four fields are
// always skipped silently.
func WithWarnings(w io.Writer) FileSourceOption {
	return func(s *FileSource) {
		s.warn = w
	}
}

// NewFileSource creates a RecordSource that reads from the given files
// using the given line parser.
func NewFileSource(files []string, line *LineParser, opts ...FileSourceOption) *FileSource {
	s := &FileSource{
		files:     files,
		line:      line,
		fileIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next parsed record.
// Malformed lines are skipped. Returns io.EOF when all files have been
// exhausted. Opening a missing file surfaces fs.ErrNotExist to errors.Is.
func (s *FileSource) Next(ctx context.Context) (*Record, error) {
	for {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Ensure we have a file open
		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		// Try to read the next line
		if s.currentScanner.Scan() {
			s.currentLine++
			line := s.currentScanner.Text()
			if line == "" {
				continue
			}

			rec, err := s.line.Parse(line)
			if err != nil {
				if s.warn != nil && !errors.Is(err, ErrTooFewFields) {
					fmt.Fprintf(s.warn, "Warning: %s:%d: skipping line: %v\n",
						s.currentSource, s.currentLine, err)
				}
				continue
			}

			rec.Source = s.currentSource
			rec.LineNum = s.currentLine
			return rec, nil
		}

		// Check for scanner error
		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
		s.currentScanner = nil
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentScanner = nil
		return err
	}
	return nil
}
