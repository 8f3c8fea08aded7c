package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary   = lipgloss.Color("205")
	Secondary = lipgloss.Color("86")
	Subtle    = lipgloss.Color("241")
	Success   = lipgloss.Color("46")
	Warning   = lipgloss.Color("214")
	Error     = lipgloss.Color("196")
	Info      = lipgloss.Color("39")

	// Banner
	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Success).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Success).
			Padding(0, 4).
			Align(lipgloss.Center)

	RuleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Success)

	// Table
	TableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	// Text
	HighlightStyle = lipgloss.NewStyle().
			Foreground(Warning)

	NoteStyle = lipgloss.NewStyle().
			Foreground(Info)

	PromptStyle = lipgloss.NewStyle().
			Bold(true)

	ChoiceStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(Subtle).
			Italic(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Subtle).
			MarginTop(1)
)

// RenderStatus returns the coloured Online/Offline label.
func RenderStatus(online bool) string {
	if online {
		return SuccessStyle.Render("Online")
	}
	return ErrorStyle.Render("Offline")
}

// RenderBreakdown renders a two-part bar chart with a legend, in the manner of a
// breakdown chart: online share in green, offline share in red.
func RenderBreakdown(online, offline float64, width int) string {
	if width <= 0 {
		width = 60
	}

	filled := 0
	if total := online + offline; total > 0 {
		filled = int(online / total * float64(width))
	}
	if filled > width {
		filled = width
	}

	bar := SuccessStyle.Render(strings.Repeat("█", filled)) +
		ErrorStyle.Render(strings.Repeat("█", width-filled))

	legend := fmt.Sprintf("%s Online %s   %s Offline %s",
		SuccessStyle.Render("■"), formatPercent(online),
		ErrorStyle.Render("■"), formatPercent(offline))

	return bar + "\n" + legend
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}
