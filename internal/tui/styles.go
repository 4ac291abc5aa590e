package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/parbench/internal/ui"
)

// Style variables for the dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	versionStyle    lipgloss.Style
	elapsedStyle    lipgloss.Style
	logBenchStyle   lipgloss.Style
	logSuccessStyle lipgloss.Style
	logErrorStyle   lipgloss.Style
	barFilledStyle  lipgloss.Style
	barEmptyStyle   lipgloss.Style
	sparklineStyle  lipgloss.Style
	statusDoneStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui palette.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	p := ui.GetCurrentPalette()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text).
		Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	versionStyle = lipgloss.NewStyle().Foreground(p.Dim)
	elapsedStyle = lipgloss.NewStyle().Foreground(p.Accent)
	logBenchStyle = lipgloss.NewStyle().Foreground(p.Accent)
	logSuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	logErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	barFilledStyle = lipgloss.NewStyle().Foreground(p.Accent)
	barEmptyStyle = lipgloss.NewStyle().Foreground(p.Dim)
	sparklineStyle = lipgloss.NewStyle().Foreground(p.Warning)
	statusDoneStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Success)
}
