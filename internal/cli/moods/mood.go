package moods

import (
	"context"
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/models"
)

type MoodCmd struct {
	Add     MoodAddCmd     `cmd:"" help:"Record a mood entry."`
	List    MoodListCmd    `cmd:"" help:"List recent mood entries."`
	Summary MoodSummaryCmd `cmd:"" help:"Summarize recent mood entries."`
}

type MoodAddCmd struct {
	Value int    `arg:"" help:"Mood value (for example 1-5)."`
	Label string `arg:"" help:"Mood label, e.g. Happy."`
	Emoji string `arg:"" help:"Mood emoji."`
	Notes string `help:"Optional notes."`
}

func (c *MoodAddCmd) Run(ctx *cli.Context) error {
	svc, _, err := ctx.Services(nil)
	if err != nil {
		return err
	}

	id, err := svc.Create(context.Background(), models.MoodInput{
		MoodValue: c.Value,
		MoodLabel: c.Label,
		MoodEmoji: c.Emoji,
		Notes:     c.Notes,
	})
	if err != nil {
		return err
	}
	ctx.Success("Recorded mood %s %s (id %d)", c.Emoji, c.Label, id)
	return nil
}

type MoodListCmd struct {
	Days *int `help:"Window in days (defaults to TRACKLIT_MOOD_WINDOW_DAYS)."`
}

func windowDays(ctx *cli.Context, days *int) int {
	if days != nil {
		return *days
	}
	return ctx.Config.MoodWindowDays
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	svc, _, err := ctx.Services(nil)
	if err != nil {
		return err
	}
	loc, err := ctx.Location()
	if err != nil {
		return err
	}

	days := windowDays(ctx, c.Days)
	entries, err := svc.List(context.Background(), days)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		ctx.Printf("No mood entries in the last %d days.\n", days)
		return nil
	}

	ctx.Println(cli.HeaderStyle.Render(fmt.Sprintf("Moods, last %d days", days)))
	for _, m := range entries {
		line := fmt.Sprintf("%s  %s %-10s %d", m.Date.In(loc).Format("2006-01-02 15:04"), m.MoodEmoji, m.MoodLabel, m.MoodValue)
		if m.Notes != "" {
			line += "  " + cli.MutedStyle.Render(m.Notes)
		}
		ctx.Println(line)
	}
	return nil
}

type MoodSummaryCmd struct {
	Days *int `help:"Window in days (defaults to TRACKLIT_MOOD_WINDOW_DAYS)."`
}

func (c *MoodSummaryCmd) Run(ctx *cli.Context) error {
	svc, _, err := ctx.Services(nil)
	if err != nil {
		return err
	}

	s, err := svc.Summarize(context.Background(), windowDays(ctx, c.Days))
	if err != nil {
		return err
	}

	ctx.Println(cli.HeaderStyle.Render(fmt.Sprintf("Mood summary, last %d days", s.WindowDays)))
	if s.Count == 0 {
		ctx.Println("No mood entries.")
		return nil
	}
	ctx.Printf("Entries: %d\nAverage: %.2f\nLowest:  %d\nHighest: %d\n", s.Count, s.Average, s.Min, s.Max)
	return nil
}
