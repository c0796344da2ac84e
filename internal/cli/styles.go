package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (c *Context) Success(format string, args ...interface{}) {
	c.Println(SuccessStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

func (c *Context) Warn(format string, args ...interface{}) {
	c.Println(WarningStyle.Render("⚠ " + fmt.Sprintf(format, args...)))
}

func (c *Context) Fail(format string, args ...interface{}) {
	c.Println(ErrorStyle.Render("✗ " + fmt.Sprintf(format, args...)))
}

// Confirm shows an interactive yes/no prompt
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeBase()).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
