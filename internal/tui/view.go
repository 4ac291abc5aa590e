package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/parbench/internal/cli"
	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/ui"
)

const progressBarWidth = 40

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	sections := []string{m.headerView(), m.progressView()}
	if m.done {
		sections = append(sections, cli.FormatSummaryTable(m.summary, ui.CurrentStyles()))
		if m.err != nil {
			sections = append(sections, logErrorStyle.Render("Error: "+m.err.Error()))
		}
	} else {
		sections = append(sections, m.logView(m.logLines()))
	}
	sections = append(sections, m.systemView(), m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	status := elapsedStyle.Render("running")
	if m.done {
		status = statusDoneStyle.Render("done")
		if m.err != nil {
			status = logErrorStyle.Render("failed")
		}
	}
	return fmt.Sprintf("%s %s  %d workers  %s  %s  %s",
		titleStyle.Render("parbench"),
		versionStyle.Render(m.version),
		m.config.Workers,
		elapsedStyle.Render(format.FormatExecutionDuration(m.elapsed.Round(time.Millisecond))),
		status,
		versionStyle.Render("theme: "+ui.GetCurrentTheme().Name))
}

func (m Model) progressView() string {
	filled := int(m.progress.Fraction * progressBarWidth)
	filled = min(max(filled, 0), progressBarWidth)
	bar := barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", progressBarWidth-filled))

	eta := "--"
	if m.progress.ETA > 0 && !m.done {
		eta = format.FormatExecutionDuration(m.progress.ETA.Round(time.Millisecond))
	}
	line := fmt.Sprintf("%s %3.0f%%  step %d/%d  ETA %s", bar, m.progress.Fraction*100, m.progress.Update.Step, m.totalSteps, eta)
	if m.failures > 0 {
		line += "  " + logErrorStyle.Render(fmt.Sprintf("%d failed", m.failures))
	}
	return line
}

// logLines returns how many run entries fit on screen.
func (m Model) logLines() int {
	// header, progress, system, help and the panel border.
	n := m.height - 7
	if n < 1 {
		return defaultLogLines
	}
	return n
}

func (m Model) logView(lines int) string {
	entries := m.entries
	if len(entries) > lines {
		entries = entries[len(entries)-lines:]
	}
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		mark := logSuccessStyle.Render("✓")
		if e.Err != nil {
			mark = logErrorStyle.Render("✗ " + e.Err.Error())
		}
		rows = append(rows, fmt.Sprintf("#%-3d %s %-9s %10s %s",
			e.Step,
			logBenchStyle.Render(fmt.Sprintf("%-10s", e.Benchmark)),
			e.Mode,
			format.FormatExecutionDuration(e.Duration),
			mark))
	}
	if len(rows) == 0 {
		rows = append(rows, versionStyle.Render("waiting for the first run..."))
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) systemView() string {
	return fmt.Sprintf("CPU %s %5.1f%%   MEM %s %5.1f%%",
		sparklineStyle.Render(RenderSparkline(m.cpu.Slice())), m.cpu.Last(),
		sparklineStyle.Render(RenderSparkline(m.mem.Slice())), m.mem.Last())
}
