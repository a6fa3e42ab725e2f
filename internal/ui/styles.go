package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// This file centralizes the lipgloss styles used by the terminal renderers.

var (
	// Headers
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // Light purple
			Bold(true).
			MarginTop(1)

	implStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // Cyan/Teal
			Bold(true)

	headlineStyle = lipgloss.NewStyle().Italic(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Verdicts
	fastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true)
	slowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// Tables
	borderStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("63")) // Purple-ish
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	itemStyle        = lipgloss.NewStyle().PaddingLeft(2)
)

// SetColor switches colored output on or off. When on, the profile is
// detected from the environment.
func SetColor(enabled bool) {
	if !enabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}
