package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/tui"
)

type TuiCmd struct {
	Days *int `help:"Mood window in days (defaults to TRACKLIT_MOOD_WINDOW_DAYS)."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	moods, habits, err := ctx.Services(nil)
	if err != nil {
		return err
	}
	loc, err := ctx.Location()
	if err != nil {
		return err
	}

	days := ctx.Config.MoodWindowDays
	if c.Days != nil {
		if *c.Days < 0 {
			return fmt.Errorf("--days must not be negative")
		}
		days = *c.Days
	}

	// Perform automatic backup on TUI startup, since it can delete habits
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(moods, habits, loc, days), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
