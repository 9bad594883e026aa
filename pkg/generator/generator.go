// Package generator produces synthetic session logs for testing and demos.
package generator

import (
	"fmt"
	"io"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Options controls synthetic log generation.
type Options struct {
	// Users is the number of distinct logins to generate.
	Users int

	// Sessions is the number of sessions to emit.
	Sessions int

	// Seed makes the output reproducible. Zero picks a random seed.
	Seed uint64

	// Anomalies injects session anomalies: unterminated starts, orphan
	// stops and cross-user stops.
	Anomalies bool

	// Start is the timestamp of the first session. Zero means midnight of
	// the current day.
	Start time.Time

	// TimestampLayout is the Go time layout for rendered timestamps.
	TimestampLayout string
}

// Generator writes synthetic Start/Stop session logs.
type Generator struct {
	faker  *gofakeit.Faker
	opts   Options
	logins []string
}

// New creates a generator. Users and Sessions must be positive.
func New(opts Options) (*Generator, error) {
	if opts.Users < 1 {
		return nil, fmt.Errorf("users must be positive, got %d", opts.Users)
	}
	if opts.Sessions < 1 {
		return nil, fmt.Errorf("sessions must be positive, got %d", opts.Sessions)
	}

	if opts.Start.IsZero() {
		now := time.Now()
		opts.Start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if opts.TimestampLayout == "" {
		opts.TimestampLayout = "2006-01-02 15:04:05"
	}

	faker := gofakeit.New(opts.Seed)

	// Usernames can collide at small counts; dedupe with a suffix.
	seen := make(map[string]bool)
	logins := make([]string, 0, opts.Users)
	for len(logins) < opts.Users {
		login := faker.Username()
		if seen[login] {
			login = fmt.Sprintf("%s%d", login, len(logins))
		}
		seen[login] = true
		logins = append(logins, login)
	}

	return &Generator{
		faker:  faker,
		opts:   opts,
		logins: logins,
	}, nil
}

// Write emits the configured number of sessions as quoted delimited lines.
// Sessions are sequential in time; with Anomalies enabled roughly every
// fifth session is broken in one of three ways.
func (g *Generator) Write(w io.Writer) error {
	clock := g.opts.Start

	for i := 0; i < g.opts.Sessions; i++ {
		login := g.logins[g.faker.Number(0, len(g.logins)-1)]
		sessionID := g.faker.UUID()

		start := clock.Add(time.Duration(g.faker.Number(1, 90)) * time.Second)
		stop := start.Add(time.Duration(g.faker.Number(60, 8*3600)) * time.Second)
		clock = stop

		if g.opts.Anomalies && i%5 == 4 {
			if err := g.writeAnomaly(w, login, sessionID, start, stop, i); err != nil {
				return err
			}
			continue
		}

		if err := g.writeLine(w, login, "Start", start, sessionID); err != nil {
			return err
		}
		if err := g.writeLine(w, login, "Stop", stop, sessionID); err != nil {
			return err
		}
	}

	return nil
}

// Logins returns the generated login pool.
func (g *Generator) Logins() []string {
	return g.logins
}

func (g *Generator) writeAnomaly(w io.Writer, login, sessionID string, start, stop time.Time, i int) error {
	switch (i / 5) % 3 {
	case 0:
		// Start never closed
		return g.writeLine(w, login, "Start", start, sessionID)
	case 1:
		// Stop without a Start
		return g.writeLine(w, login, "Stop", stop, sessionID)
	default:
		// Session closed by a different login
		other := g.logins[(indexOf(g.logins, login)+1)%len(g.logins)]
		if err := g.writeLine(w, login, "Start", start, sessionID); err != nil {
			return err
		}
		return g.writeLine(w, other, "Stop", stop, sessionID)
	}
}

func (g *Generator) writeLine(w io.Writer, login, action string, ts time.Time, sessionID string) error {
	_, err := fmt.Fprintf(w, "\"%s\";\"%s\";\"%s\";\"%s\"\n",
		login, action, ts.Format(g.opts.TimestampLayout), sessionID)
	return err
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 0
}
