package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/validation"
)

// MoodStore is the storage surface the mood service needs
type MoodStore interface {
	CreateMood(ctx context.Context, entry models.MoodEntry) (int64, error)
	ListMoodsSince(ctx context.Context, since time.Time) ([]models.MoodEntry, error)
}

type MoodService struct {
	store MoodStore
	clock clock
}

func NewMoodService(store MoodStore, opts ...Option) *MoodService {
	return &MoodService{
		store: store,
		clock: newClock(opts),
	}
}

// Create validates and stores a mood entry dated now (UTC)
func (s *MoodService) Create(ctx context.Context, in models.MoodInput) (int64, error) {
	if err := validation.MoodInput(in); err != nil {
		return 0, err
	}

	entry := models.MoodEntry{
		MoodValue: in.MoodValue,
		MoodLabel: strings.TrimSpace(in.MoodLabel),
		MoodEmoji: strings.TrimSpace(in.MoodEmoji),
		Notes:     in.Notes,
		Date:      s.clock.now().UTC(),
	}

	id, err := s.store.CreateMood(ctx, entry)
	if err != nil {
		return 0, err
	}

	logger.Debug("Mood created", "id", id, "value", entry.MoodValue, "label", entry.MoodLabel)
	return id, nil
}

// List returns entries dated within the last windowDays days, most recent
// first. The boundary instant itself is included.
func (s *MoodService) List(ctx context.Context, windowDays int) ([]models.MoodEntry, error) {
	if err := validation.WindowDays(windowDays); err != nil {
		return nil, err
	}

	var since time.Time
	if windowDays <= constants.MaxMoodWindowDays {
		since = s.clock.now().UTC().Add(-time.Duration(windowDays) * 24 * time.Hour)
	}
	return s.store.ListMoodsSince(ctx, since)
}

// Summarize aggregates the entries of a window
func (s *MoodService) Summarize(ctx context.Context, windowDays int) (models.MoodSummary, error) {
	moods, err := s.List(ctx, windowDays)
	if err != nil {
		return models.MoodSummary{}, err
	}
	return Summarize(moods, windowDays), nil
}

// Summarize computes count, average, min and max mood values. The average is
// rounded to two decimals and is zero for an empty window.
func Summarize(moods []models.MoodEntry, windowDays int) models.MoodSummary {
	summary := models.MoodSummary{WindowDays: windowDays, Count: len(moods)}
	if len(moods) == 0 {
		return summary
	}

	total := 0
	summary.Min = moods[0].MoodValue
	summary.Max = moods[0].MoodValue
	for _, m := range moods {
		total += m.MoodValue
		summary.Min = min(summary.Min, m.MoodValue)
		summary.Max = max(summary.Max, m.MoodValue)
	}

	avg := float64(total) / float64(len(moods))
	summary.Average = math.Round(avg*100) / 100
	return summary
}
