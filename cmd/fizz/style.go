package main

import (
	"charm.land/lipgloss/v2"
)

var (
	infoStyle   = lipgloss.NewStyle().Faint(true)
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5fafff"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87d787"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
