package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/storage"
)

func (s *Store) CreateHabit(ctx context.Context, name string, createdAt time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO habits (name, created_at) VALUES (?, ?)`,
		name, formatTime(createdAt))
	if err != nil {
		return 0, apperrors.Fault("create habit", err)
	}

	id, err := result.LastInsertId()
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
		var createdAt string

		if err := rows.Scan(&h.ID, &h.Name, &createdAt); err != nil {
			return nil, apperrors.Fault("list habits", err)
		}

		h.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, apperrors.Fault("list habits", fmt.Errorf("failed to parse created_at for habit %d: %w", h.ID, err))
		}
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
		var date string
		if err := compRows.Scan(&habitID, &date); err != nil {
			return nil, apperrors.Fault("list habits", err)
		}
		if i, ok := index[habitID]; ok {
			habits[i].Completions = append(habits[i].Completions, date)
		}
	}
	if err := compRows.Err(); err != nil {
		return nil, apperrors.Fault("list habits", err)
	}

	return habits, nil
}

func (s *Store) HabitExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM habits WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Fault("habit exists", err)
	}
	return true, nil
}

func (s *Store) DeleteHabit(ctx context.Context, id int64) error {
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM habit_completions WHERE habit_id = ?", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", id)
		return err
	})
	return apperrors.Fault("delete habit", err)
}

func (s *Store) ToggleCompletion(ctx context.Context, id int64, date string) (bool, error) {
	var completed bool

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM habits WHERE id = ?", id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound("habit", id)
		}
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			"DELETE FROM habit_completions WHERE habit_id = ? AND date = ?", id, date)
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
			INSERT INTO habit_completions (habit_id, date) VALUES (?, ?)
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

// CountDuplicateCompletions returns the number of surplus rows sharing a
// (habit_id, date) pair
func (s *Store) CountDuplicateCompletions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(c - 1), 0)
		FROM (
			SELECT COUNT(*) AS c
			FROM habit_completions
			GROUP BY habit_id, date
			HAVING COUNT(*) > 1
		)`).Scan(&n)
	if err != nil {
		return 0, apperrors.Fault("count duplicate completions", err)
	}
	return n, nil
}
