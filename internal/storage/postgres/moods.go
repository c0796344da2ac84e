package postgres

import (
	"context"
	"time"

	apperrors "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
)

func (s *Store) CreateMood(ctx context.Context, entry models.MoodEntry) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO moods (mood_value, mood_label, mood_emoji, notes, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		entry.MoodValue, entry.MoodLabel, entry.MoodEmoji, entry.Notes, entry.Date.UTC()).Scan(&id)
	if err != nil {
		return 0, apperrors.Fault("create mood", err)
	}
	return id, nil
}

func (s *Store) ListMoodsSince(ctx context.Context, since time.Time) ([]models.MoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mood_value, mood_label, mood_emoji, notes, date
		FROM moods
		WHERE date >= $1
		ORDER BY date DESC, id DESC`, since.UTC())
	if err != nil {
		return nil, apperrors.Fault("list moods", err)
	}
	defer rows.Close()

	moods := []models.MoodEntry{}
	for rows.Next() {
		var m models.MoodEntry
		if err := rows.Scan(&m.ID, &m.MoodValue, &m.MoodLabel, &m.MoodEmoji, &m.Notes, &m.Date); err != nil {
			return nil, apperrors.Fault("list moods", err)
		}
		m.Date = m.Date.UTC()
		moods = append(moods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Fault("list moods", err)
	}
	return moods, nil
}
