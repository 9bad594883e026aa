// Package tui provides an interactive terminal front-end for the work time
// calculator.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"worktally/pkg/aggregator"
	"worktally/pkg/config"
	"worktally/pkg/output"
	"worktally/pkg/parser"
)

type focusField int

const (
	focusPath focusField = iota
	focusLogin
)

type phase int

const (
	phaseInput phase = iota
	phaseRunning
	phaseDone
	phaseFailed
)

// resultMsg carries a completed pass back to the update loop.
type resultMsg struct {
	report *output.Report
	err    error
}

// Model is the Bubble Tea model for the calculator interface.
type Model struct {
	cfg *config.Config

	Path  string
	Login string
	Focus focusField

	Phase  phase
	Report *output.Report
	Err    error

	// cancelled is the cooperative cancellation flag. It cannot interrupt a
	// pass in flight; it only discards the result once the pass completes.
	cancelled bool

	scroll int
}

// NewModel creates the initial model.
func NewModel(cfg *config.Config) *Model {
	return &Model{cfg: cfg}
}

// Run opens the interface and blocks until the user quits.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		return m.handleResult(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	if m.cancelled {
		// Discard: the pass finished but the user already asked out.
		m.cancelled = false
		m.Phase = phaseInput
		return m, nil
	}

	if msg.err != nil {
		m.Err = msg.err
		m.Phase = phaseFailed
		return m, nil
	}

	m.Report = msg.report
	m.Phase = phaseDone
	m.scroll = 0
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.Phase {
	case phaseRunning:
		if msg.String() == "esc" {
			m.cancelled = true
		}
		return m, nil
	case phaseDone, phaseFailed:
		return m.handleResultKeys(msg)
	default:
		return m.handleInputKeys(msg)
	}
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.Phase = phaseInput
		m.Report = nil
		m.Err = nil
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		m.scroll++
	}
	return m, nil
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		if m.Focus == focusPath {
			m.Focus = focusLogin
		} else {
			m.Focus = focusPath
		}
		return m, nil
	case "enter":
		if strings.TrimSpace(m.Path) == "" {
			return m, nil
		}
		m.Phase = phaseRunning
		m.cancelled = false
		return m, m.runCmd()
	case "backspace":
		field := m.focusedField()
		if len(*field) > 0 {
			runes := []rune(*field)
			*field = string(runes[:len(runes)-1])
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		field := m.focusedField()
		if msg.Type == tea.KeySpace {
			*field += " "
		} else {
			*field += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *Model) focusedField() *string {
	if m.Focus == focusLogin {
		return &m.Login
	}
	return &m.Path
}

// runCmd starts the aggregation pass on a background goroutine.
// The pass itself is uninterruptible; cancellation is decided when the
// result message arrives.
func (m *Model) runCmd() tea.Cmd {
	cfg := m.cfg
	path := strings.TrimSpace(m.Path)
	login := strings.TrimSpace(m.Login)

	return func() tea.Msg {
		report, err := compute(cfg, path, login)
		return resultMsg{report: report, err: err}
	}
}

// compute runs one full pass over the given log path.
// Unlike the CLI path, malformed lines are skipped without warnings.
func compute(cfg *config.Config, path, login string) (*output.Report, error) {
	files, err := parser.ExpandGlobs([]string{path})
	if err != nil {
		return nil, fmt.Errorf("expanding log path: %w", err)
	}

	line := parser.NewLineParser(cfg.LogFormat.Delimiter, cfg.LogFormat.TimestampLayout)
	source := parser.NewFileSource(files, line)
	defer source.Close()

	aggOpts := []aggregator.Option{
		aggregator.WithActions(cfg.LogFormat.StartAction, cfg.LogFormat.StopAction),
	}
	if login != "" {
		aggOpts = append(aggOpts, aggregator.WithLoginFilter(login))
	}

	result, err := aggregator.New(aggOpts...).Run(context.Background(), source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("log file not found: %s", path)
		}
		return nil, fmt.Errorf("processing log: %w", err)
	}

	return output.NewReport(result, login), nil
}
