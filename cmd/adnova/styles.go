package main

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#7B2D8E")
	warning = lipgloss.Color("#FFC107")
	danger  = lipgloss.Color("#E53935")
	muted   = lipgloss.Color("#8A8F98")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	warnStyle  = lipgloss.NewStyle().Foreground(warning)
	failStyle  = lipgloss.NewStyle().Foreground(danger).Italic(true)
	mutedStyle = lipgloss.NewStyle().Foreground(muted)
)
