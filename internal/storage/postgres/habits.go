package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	apperrors "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/storage"
)

func (s *Store) CreateHabit(ctx context.Context, name string, createdAt time.Time) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO habits (name, created_at) VALUES ($1, $2) RETURNING id",
		name, createdAt.UTC()).Scan(&id)
	if err != nil {
		return 0, apperrors.Fault("create habit", err)
	}
	return id, nil
}

func (s *Store) ListHabits(ctx context.Context) ([]models.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM habits
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, apperrors.Fault("list habits", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	index := make(map[int64]int)
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt); err != nil {
			return nil, apperrors.Fault("list habits", err)
		}
		h.CreatedAt = h.CreatedAt.UTC()
		h.Completions = []string{}

		index[h.ID] = len(habits)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Fault("list habits", err)
	}

	if len(habits) == 0 {
		return habits, nil
	}

	compRows, err := s.db.QueryContext(ctx, `
		SELECT habit_id, date
		FROM habit_completions
		ORDER BY date DESC`)
	if err != nil {
		return nil, apperrors.Fault("list habits", err)
	}
	defer compRows.Close()

	for compRows.Next() {
		var habitID int64
		var date time.Time
		if err := compRows.Scan(&habitID, &date); err != nil {
			return nil, apperrors.Fault("list habits", err)
		}
		if i, ok := index[habitID]; ok {
			habits[i].Completions = append(habits[i].Completions, date.Format(constants.DateFormat))
		}
	}
	if err := compRows.Err(); err != nil {
		return nil, apperrors.Fault("list habits", err)
	}

	return habits, nil
}

func (s *Store) HabitExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM habits WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, apperrors.Fault("habit exists", err)
	}
	return exists, nil
}

func (s *Store) DeleteHabit(ctx context.Context, id int64) error {
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM habit_completions WHERE habit_id = $1", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM habits WHERE id = $1", id)
		return err
	})
	return apperrors.Fault("delete habit", err)
}

func (s *Store) ToggleCompletion(ctx context.Context, id int64, date string) (bool, error) {
	var completed bool

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// Row lock on the habit serializes toggles for it and blocks a concurrent delete
		var locked int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM habits WHERE id = $1 FOR UPDATE", id).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound("habit", id)
		}
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			"DELETE FROM habit_completions WHERE habit_id = $1 AND date = $2", id, date)
		if err != nil {
			return err
		}
		removed, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if removed > 0 {
			completed = false
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO habit_completions (habit_id, date) VALUES ($1, $2)
			ON CONFLICT (habit_id, date) DO NOTHING`, id, date); err != nil {
			return err
		}
		completed = true
		return nil
	})
	if err != nil {
		return false, apperrors.Fault("toggle completion", err)
	}
	return completed, nil
}

func (s *Store) CountOrphanCompletions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM habit_completions hc
		LEFT JOIN habits h ON h.id = hc.habit_id
		WHERE h.id IS NULL`).Scan(&n)
	if err != nil {
		return 0, apperrors.Fault("count orphan completions", err)
	}
	return n, nil
}

func (s *Store) CountDuplicateCompletions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(c - 1), 0)
		FROM (
			SELECT COUNT(*) AS c
			FROM habit_completions
			GROUP BY habit_id, date
			HAVING COUNT(*) > 1
		) dup`).Scan(&n)
	if err != nil {
		return 0, apperrors.Fault("count duplicate completions", err)
	}
	return n, nil
}
