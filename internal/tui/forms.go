package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/models"
)

// MoodPreset is one of the fixed moods offered by the log form
type MoodPreset struct {
	Emoji string
	Label string
	Value int
}

var MoodPresets = []MoodPreset{
	{Emoji: "😊", Label: "Great", Value: 5},
	{Emoji: "🙂", Label: "Good", Value: 4},
	{Emoji: "😐", Label: "Okay", Value: 3},
	{Emoji: "😔", Label: "Bad", Value: 2},
	{Emoji: "😢", Label: "Terrible", Value: 1},
}

func (fm *MoodFormModel) Input() models.MoodInput {
	p := MoodPresets[fm.Preset]
	return models.MoodInput{
		MoodValue: p.Value,
		MoodLabel: p.Label,
		MoodEmoji: p.Emoji,
		Notes:     strings.TrimSpace(fm.Notes),
	}
}

func NewMoodForm(fm *MoodFormModel) *huh.Form {
	options := make([]huh.Option[int], len(MoodPresets))
	for i, p := range MoodPresets {
		options[i] = huh.NewOption(fmt.Sprintf("%s %s", p.Emoji, p.Label), i)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How are you feeling?").
				Options(options...).
				Value(&fm.Preset),
			huh.NewText().
				Title("Notes").
				Description("Optional").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
