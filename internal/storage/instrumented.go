package storage

import (
	"context"
	"time"

	"github.com/julianstephens/tracklit/internal/metrics"
	"github.com/julianstephens/tracklit/internal/models"
)

// Instrumented wraps a Provider and records the duration of every data
// operation in the storage metrics. Lifecycle calls pass straight through.
type Instrumented struct {
	Provider
}

func NewInstrumented(p Provider) *Instrumented {
	return &Instrumented{Provider: p}
}

func (i *Instrumented) CreateMood(ctx context.Context, entry models.MoodEntry) (id int64, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("create_mood", start, err) }(time.Now())
	return i.Provider.CreateMood(ctx, entry)
}

func (i *Instrumented) ListMoodsSince(ctx context.Context, since time.Time) (moods []models.MoodEntry, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("list_moods", start, err) }(time.Now())
	return i.Provider.ListMoodsSince(ctx, since)
}

func (i *Instrumented) CreateHabit(ctx context.Context, name string, createdAt time.Time) (id int64, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("create_habit", start, err) }(time.Now())
	return i.Provider.CreateHabit(ctx, name, createdAt)
}

func (i *Instrumented) ListHabits(ctx context.Context) (habits []models.Habit, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("list_habits", start, err) }(time.Now())
	return i.Provider.ListHabits(ctx)
}

func (i *Instrumented) HabitExists(ctx context.Context, id int64) (exists bool, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("habit_exists", start, err) }(time.Now())
	return i.Provider.HabitExists(ctx, id)
}

func (i *Instrumented) DeleteHabit(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { metrics.ObserveStorage("delete_habit", start, err) }(time.Now())
	return i.Provider.DeleteHabit(ctx, id)
}

func (i *Instrumented) ToggleCompletion(ctx context.Context, id int64, date string) (completed bool, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("toggle_completion", start, err) }(time.Now())
	return i.Provider.ToggleCompletion(ctx, id, date)
}
