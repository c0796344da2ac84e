package models

import "time"

// Habit represents a named recurring activity tracked daily
type Habit struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	Completions []string  `json:"completions"` // YYYY-MM-DD, most recent first
}

// HabitView is a Habit enriched with derived progress figures
type HabitView struct {
	Habit
	CurrentStreak  int `json:"currentStreak"`
	CompletionRate int `json:"completionRate"`
}

// ToggleResult reports the completion state left behind by a toggle
type ToggleResult struct {
	HabitID   int64  `json:"habitId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}
