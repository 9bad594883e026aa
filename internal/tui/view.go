package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"worktally/pkg/aggregator"
	"worktally/pkg/output"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	inputInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// maxVisibleLines bounds the results view before scrolling kicks in.
const maxVisibleLines = 20

// View implements tea.Model.
func (m *Model) View() string {
	switch m.Phase {
	case phaseRunning:
		return m.runningView()
	case phaseDone:
		return m.resultsView()
	case phaseFailed:
		return m.errorView()
	default:
		return m.inputView()
	}
}

func (m *Model) inputView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Work Time Calculator"))
	b.WriteString("\n\n")

	b.WriteString(renderField("Log file", m.Path, m.Focus == focusPath))
	b.WriteString("\n")
	b.WriteString(renderField("Login filter (optional)", m.Login, m.Focus == focusLogin))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("tab: switch field • enter: calculate • esc: quit"))

	return boxStyle.Render(b.String())
}

func renderField(label, value string, focused bool) string {
	style := inputInactiveStyle
	cursor := " "
	if focused {
		style = inputStyle
		cursor = "█"
	}
	return fmt.Sprintf("%s\n%s", labelStyle.Render(label), style.Render("> "+value+cursor))
}

func (m *Model) runningView() string {
	status := "Calculating..."
	if m.cancelled {
		status = "Cancelling (waiting for the pass to finish)..."
	}

	return boxStyle.Render(
		titleStyle.Render("Work Time Calculator") + "\n\n" +
			status + "\n\n" +
			helpStyle.Render("esc: cancel"))
}

func (m *Model) errorView() string {
	return boxStyle.Render(
		titleStyle.Render("Work Time Calculator") + "\n\n" +
			errorStyle.Render(fmt.Sprintf("Error: %v", m.Err)) + "\n\n" +
			helpStyle.Render("esc: back"))
}

func (m *Model) resultsView() string {
	lines := m.resultLines()

	// Clamp scroll to the content
	maxScroll := len(lines) - maxVisibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}

	end := m.scroll + maxVisibleLines
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Results"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines[m.scroll:end], "\n"))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("j/k: scroll • esc: back • ctrl+c: quit"))

	return boxStyle.Render(b.String())
}

// resultLines renders the report body, one display line per entry.
func (m *Model) resultLines() []string {
	report := m.Report
	var lines []string

	if report.Metadata.Login != "" {
		login := report.Metadata.Login
		lines = append(lines, totalStyle.Render(
			fmt.Sprintf("%s: %s", login, output.FormatDuration(report.Totals[login]))))
		lines = append(lines, m.diagnosticLines(aggregator.FilterByLogin(report.Diagnostics, login))...)
		return lines
	}

	if len(report.Totals) == 0 {
		lines = append(lines, "No complete Start/Stop intervals found.")
	} else {
		logins := make([]string, 0, len(report.Totals))
		for login := range report.Totals {
			logins = append(logins, login)
		}
		sort.Strings(logins)

		for _, login := range logins {
			lines = append(lines, totalStyle.Render(
				fmt.Sprintf("%s: %s", login, output.FormatDuration(report.Totals[login]))))
		}
	}

	lines = append(lines, m.diagnosticLines(report.Diagnostics)...)
	return lines
}

func (m *Model) diagnosticLines(diags []aggregator.Diagnostic) []string {
	if len(diags) == 0 {
		return nil
	}

	lines := []string{"", warningStyle.Render(fmt.Sprintf("Warnings (%d):", len(diags)))}
	for _, d := range diags {
		lines = append(lines, warningStyle.Render("  - "+d.String()))
	}
	return lines
}
