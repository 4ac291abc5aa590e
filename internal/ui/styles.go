package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used to render benchmark summaries.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Number lipgloss.Style
	Good   lipgloss.Style
	Bad    lipgloss.Style
	Dim    lipgloss.Style
	Box    lipgloss.Style
}

// NewStyles builds Styles from a palette.
func NewStyles(p Palette) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Header: lipgloss.NewStyle().Bold(true).Foreground(p.Text).PaddingRight(2),
		Cell:   lipgloss.NewStyle().Foreground(p.Text).PaddingRight(2),
		Number: lipgloss.NewStyle().Foreground(p.Text).PaddingRight(2).Align(lipgloss.Right),
		Good:   lipgloss.NewStyle().Foreground(p.Success).PaddingRight(2).Align(lipgloss.Right),
		Bad:    lipgloss.NewStyle().Foreground(p.Error).PaddingRight(2).Align(lipgloss.Right),
		Dim:    lipgloss.NewStyle().Foreground(p.Dim),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
	}
}

// CurrentStyles returns Styles for the active theme.
func CurrentStyles() Styles {
	return NewStyles(GetCurrentPalette())
}
