package habits

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tracklit/internal/cli"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with streaks."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completions."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	_, svc, err := ctx.Services(nil)
	if err != nil {
		return err
	}

	id, err := svc.Create(context.Background(), c.Name)
	if err != nil {
		return err
	}
	ctx.Success("Added habit %q (id %d)", strings.TrimSpace(c.Name), id)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	_, svc, err := ctx.Services(nil)
	if err != nil {
		return err
	}

	habits, err := svc.List(context.Background())
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	today := svc.Today()
	ctx.Println(cli.HeaderStyle.Render("Habits"))
	for _, h := range habits {
		mark := "[ ]"
		if len(h.Completions) > 0 && h.Completions[0] == today {
			mark = cli.SuccessStyle.Render("[x]")
		}
		ctx.Printf("%s %3d  %-24s %s\n", mark, h.ID, h.Name,
			cli.MutedStyle.Render(fmt.Sprintf("streak %d, %d%% complete", h.CurrentStreak, h.CompletionRate)))
	}
	return nil
}

type HabitDeleteCmd struct {
	ID  int64 `arg:"" help:"Habit id."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	_, svc, err := ctx.Services(nil)
	if err != nil {
		return err
	}

	exists, err := svc.Exists(context.Background(), c.ID)
	if err != nil {
		return err
	}
	if !exists {
		ctx.Printf("Habit %d not found, nothing to delete\n", c.ID)
		return nil
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete habit %d and all of its completions?", c.ID))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("delete cancelled")
		}
	}

	ctx.PerformAutomaticBackup()
	if err := svc.Delete(context.Background(), c.ID); err != nil {
		return err
	}
	ctx.Success("Habit %d deleted", c.ID)
	return nil
}

type HabitToggleCmd struct {
	ID   int64  `arg:"" help:"Habit id."`
	Date string `help:"Day to toggle as YYYY-MM-DD (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	_, svc, err := ctx.Services(nil)
	if err != nil {
		return err
	}

	result, err := svc.Toggle(context.Background(), c.ID, c.Date)
	if err != nil {
		return err
	}
	if result.Completed {
		ctx.Success("Habit %d marked done for %s", c.ID, result.Date)
	} else {
		ctx.Printf("Habit %d unmarked for %s\n", c.ID, result.Date)
	}
	return nil
}
