package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	apperrors "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
)

// formatTime renders t in the fixed-width UTC layout used for every stored timestamp
func formatTime(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(constants.TimestampFormat, s)
}

func (s *Store) CreateMood(ctx context.Context, entry models.MoodEntry) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO moods (mood_value, mood_label, mood_emoji, notes, date)
		VALUES (?, ?, ?, ?, ?)`,
		entry.MoodValue, entry.MoodLabel, entry.MoodEmoji, entry.Notes, formatTime(entry.Date))
	if err != nil {
		return 0, apperrors.Fault("create mood", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Fault("create mood", err)
	}
	return id, nil
}

func (s *Store) ListMoodsSince(ctx context.Context, since time.Time) ([]models.MoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mood_value, mood_label, mood_emoji, notes, date
		FROM moods
		WHERE date >= ?
		ORDER BY date DESC, id DESC`, formatTime(since))
	if err != nil {
		return nil, apperrors.Fault("list moods", err)
	}
	defer rows.Close()

	moods := []models.MoodEntry{}
	for rows.Next() {
		var m models.MoodEntry
		var date string

		if err := rows.Scan(&m.ID, &m.MoodValue, &m.MoodLabel, &m.MoodEmoji, &m.Notes, &date); err != nil {
			return nil, apperrors.Fault("list moods", err)
		}

		m.Date, err = parseTime(date)
		if err != nil {
			return nil, apperrors.Fault("list moods", fmt.Errorf("failed to parse date for mood %d: %w", m.ID, err))
		}

		moods = append(moods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Fault("list moods", err)
	}
	return moods, nil
}
