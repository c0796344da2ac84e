package service

import (
	"context"
	"strings"
	"time"

	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/utils"
	"github.com/julianstephens/tracklit/internal/validation"
)

// HabitStore is the storage surface the habit service needs
type HabitStore interface {
	CreateHabit(ctx context.Context, name string, createdAt time.Time) (int64, error)
	ListHabits(ctx context.Context) ([]models.Habit, error)
	HabitExists(ctx context.Context, id int64) (bool, error)
	DeleteHabit(ctx context.Context, id int64) error
	ToggleCompletion(ctx context.Context, id int64, date string) (bool, error)
}

type HabitService struct {
	store HabitStore
	clock clock
}

func NewHabitService(store HabitStore, opts ...Option) *HabitService {
	return &HabitService{
		store: store,
		clock: newClock(opts),
	}
}

// Today returns the current calendar date in the service's timezone
func (s *HabitService) Today() string {
	return utils.DateIn(s.clock.now(), s.clock.loc)
}

func (s *HabitService) Create(ctx context.Context, name string) (int64, error) {
	if err := validation.HabitName(name); err != nil {
		return 0, err
	}

	name = strings.TrimSpace(name)
	id, err := s.store.CreateHabit(ctx, name, s.clock.now().UTC())
	if err != nil {
		return 0, err
	}

	logger.Debug("Habit created", "id", id, "name", name)
	return id, nil
}

// List returns every habit newest first with its completions and stats
func (s *HabitService) List(ctx context.Context) ([]models.HabitView, error) {
	habits, err := s.store.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	views := make([]models.HabitView, 0, len(habits))
	for _, h := range habits {
		created := utils.DateIn(h.CreatedAt, s.clock.loc)
		views = append(views, models.HabitView{
			Habit:          h,
			CurrentStreak:  utils.CurrentStreak(h.Completions, today),
			CompletionRate: utils.CompletionRate(h.Completions, created, today),
		})
	}
	return views, nil
}

// Exists reports whether a habit with id is stored
func (s *HabitService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.store.HabitExists(ctx, id)
}

// Delete removes a habit and its completions. Missing ids are ignored.
func (s *HabitService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteHabit(ctx, id); err != nil {
		return err
	}
	logger.Debug("Habit deleted", "id", id)
	return nil
}

// Toggle flips the completion of habit id on date, or today when date is empty
func (s *HabitService) Toggle(ctx context.Context, id int64, date string) (models.ToggleResult, error) {
	if date == "" {
		date = s.Today()
	} else if err := validation.CompletionDate(date); err != nil {
		return models.ToggleResult{}, err
	}

	completed, err := s.store.ToggleCompletion(ctx, id, date)
	if err != nil {
		return models.ToggleResult{}, err
	}

	logger.Debug("Habit toggled", "id", id, "date", date, "completed", completed)
	return models.ToggleResult{HabitID: id, Date: date, Completed: completed}, nil
}
