package models

import "time"

// MoodEntry is a timestamped subjective mood rating
type MoodEntry struct {
	ID        int64     `json:"id"`
	MoodValue int       `json:"moodValue"`
	MoodLabel string    `json:"moodLabel"`
	MoodEmoji string    `json:"moodEmoji"`
	Notes     string    `json:"notes"`
	Date      time.Time `json:"date"`
}

// MoodInput carries the caller-supplied fields of a new mood entry
type MoodInput struct {
	MoodValue int    `json:"moodValue"`
	MoodLabel string `json:"moodLabel"`
	MoodEmoji string `json:"moodEmoji"`
	Notes     string `json:"notes"`
}

// MoodSummary aggregates the mood entries of a recency window
type MoodSummary struct {
	WindowDays int     `json:"windowDays"`
	Count      int     `json:"count"`
	Average    float64 `json:"average"`
	Min        int     `json:"min"`
	Max        int     `json:"max"`
}
