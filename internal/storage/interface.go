package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/julianstephens/tracklit/internal/migration"
	"github.com/julianstephens/tracklit/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Ping(ctx context.Context) error
	// Migrate applies pending embedded migrations and returns how many ran
	Migrate(logFn func(string)) (int, error)
	// SchemaVersion reports the applied and the newest embedded schema version
	SchemaVersion() (current, latest int, err error)

	// Moods
	CreateMood(ctx context.Context, entry models.MoodEntry) (int64, error)
	// ListMoodsSince returns entries with date >= since, most recent first
	ListMoodsSince(ctx context.Context, since time.Time) ([]models.MoodEntry, error)

	// Habits
	CreateHabit(ctx context.Context, name string, createdAt time.Time) (int64, error)
	// ListHabits returns habits newest first, each with its completion dates descending
	ListHabits(ctx context.Context) ([]models.Habit, error)
	HabitExists(ctx context.Context, id int64) (bool, error)
	// DeleteHabit removes the habit and its completions in one transaction.
	// Deleting a missing id is not an error.
	DeleteHabit(ctx context.Context, id int64) error
	// ToggleCompletion flips the completion for (id, date) and reports whether
	// the habit is now completed on that date. Returns a NotFoundError if the
	// habit does not exist.
	ToggleCompletion(ctx context.Context, id int64, date string) (bool, error)

	// Integrity
	CountOrphanCompletions(ctx context.Context) (int, error)
	CountDuplicateCompletions(ctx context.Context) (int, error)

	// Utils
	Driver() migration.Driver
	GetConfigPath() string
	GetDB() *sql.DB
}
