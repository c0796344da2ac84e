package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = lipgloss.Color("205")
	colorMuted  = lipgloss.Color("240")
	colorOK     = lipgloss.Color("42")
	colorBad    = lipgloss.Color("196")
	colorTabBg  = lipgloss.Color("236")
)

var (
	docStyle = lipgloss.NewStyle().Padding(1, 2)

	tabStyle         = lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle   = tabStyle.Foreground(colorAccent).Background(colorTabBg).Bold(true)
	inactiveTabStyle = tabStyle.Foreground(colorMuted)

	dangerStyle = lipgloss.NewStyle().Foreground(colorBad).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(colorOK).PaddingLeft(2)
	errorStyle  = statusStyle.Foreground(colorBad)
)
