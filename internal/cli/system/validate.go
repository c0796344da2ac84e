package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/validation"
)

// ErrConflicts is returned by validate when stored data has problems
var ErrConflicts = errors.New("validation found conflicts")

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := collectConflicts(context.Background(), ctx)
	if err != nil {
		return err
	}

	if !result.HasConflicts() {
		ctx.Success("No conflicts detected.")
		return nil
	}
	ctx.Printf("%s", result.FormatReport())
	return fmt.Errorf("%w: %d found", ErrConflicts, len(result.Conflicts))
}

// collectConflicts runs every data check against the store
func collectConflicts(parent context.Context, ctx *cli.Context) (validation.ValidationResult, error) {
	c, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()

	v := validation.New()
	var result validation.ValidationResult

	habits, err := ctx.Store.ListHabits(c)
	if err != nil {
		return result, fmt.Errorf("failed to load habits: %w", err)
	}
	result.Merge(v.ValidateHabits(habits))

	moods, err := ctx.Store.ListMoodsSince(c, time.Time{})
	if err != nil {
		return result, fmt.Errorf("failed to load moods: %w", err)
	}
	result.Merge(v.ValidateMoods(moods))

	orphans, err := ctx.Store.CountOrphanCompletions(c)
	if err != nil {
		return result, fmt.Errorf("failed to count orphan completions: %w", err)
	}
	dups, err := ctx.Store.CountDuplicateCompletions(c)
	if err != nil {
		return result, fmt.Errorf("failed to count duplicate completions: %w", err)
	}
	result.Merge(v.ValidateCompletionCounts(orphans, dups))

	return result, nil
}
