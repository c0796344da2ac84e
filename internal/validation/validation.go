package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	apperrors "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/utils"
)

// ConflictType represents the type of integrity problem found in stored data
type ConflictType string

const (
	ConflictEmptyHabitName        ConflictType = "empty_habit_name"
	ConflictDuplicateHabitName    ConflictType = "duplicate_habit_name"
	ConflictInvalidDate           ConflictType = "invalid_date"
	ConflictDuplicateCompletion   ConflictType = "duplicate_completion"
	ConflictOrphanCompletion      ConflictType = "orphan_completion"
	ConflictIncompleteMood        ConflictType = "incomplete_mood"
	ConflictFutureMood            ConflictType = "future_mood"
	ConflictCompletionBeforeHabit ConflictType = "completion_before_habit"
)

// Conflict represents a detected problem in moods or habits
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Habit names or mood labels involved
	HabitIDs    []int64
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends the conflicts of other
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// MoodInput checks the fields a caller must supply for a mood entry
func MoodInput(in models.MoodInput) error {
	if strings.TrimSpace(in.MoodLabel) == "" {
		return apperrors.NewValidation("moodLabel", "must not be empty")
	}
	if strings.TrimSpace(in.MoodEmoji) == "" {
		return apperrors.NewValidation("moodEmoji", "must not be empty")
	}
	return nil
}

// HabitName checks a habit name is non-empty
func HabitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidation("name", "must not be empty")
	}
	return nil
}

// WindowDays checks a mood retrieval window
func WindowDays(days int) error {
	if days < 0 {
		return apperrors.NewValidation("days", fmt.Sprintf("must not be negative, got %d", days))
	}
	return nil
}

// CompletionDate checks an explicit YYYY-MM-DD toggle date
func CompletionDate(date string) error {
	if !utils.ValidateDateFormat(date) {
		return apperrors.NewValidation("date", fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", date))
	}
	return nil
}

// Validator checks stored moods and habits for integrity problems
type Validator struct {
	now func() time.Time
}

// New creates a new Validator
func New() *Validator {
	return &Validator{now: time.Now}
}

// ValidateHabits checks habits and their completion lists
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameIDs := make(map[string][]int64)
	for _, h := range habits {
		name := strings.TrimSpace(h.Name)
		if name == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyHabitName,
				Description: fmt.Sprintf("Habit %d has an empty name", h.ID),
				HabitIDs:    []int64{h.ID},
			})
			continue
		}
		key := strings.ToLower(name)
		nameIDs[key] = append(nameIDs[key], h.ID)
	}

	names := make([]string, 0, len(nameIDs))
	for name := range nameIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ids := nameIDs[name]
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				HabitIDs:    ids,
			})
		}
	}

	for _, h := range habits {
		created := h.CreatedAt.UTC().Format(constants.DateFormat)
		seen := make(map[string]bool, len(h.Completions))
		for _, date := range h.Completions {
			if CompletionDate(date) != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDate,
					Description: fmt.Sprintf("Habit \"%s\" has an invalid completion date: %s", h.Name, date),
					Date:        date,
					Items:       []string{h.Name},
					HabitIDs:    []int64{h.ID},
				})
				continue
			}
			if seen[date] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateCompletion,
					Description: fmt.Sprintf("Habit \"%s\" is completed more than once on %s", h.Name, date),
					Date:        date,
					Items:       []string{h.Name},
					HabitIDs:    []int64{h.ID},
				})
				continue
			}
			seen[date] = true
			// Explicit toggle dates may precede creation; report, don't reject
			if !h.CreatedAt.IsZero() && date < created {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictCompletionBeforeHabit,
					Description: fmt.Sprintf("Habit \"%s\" has a completion on %s before it was created (%s)", h.Name, date, created),
					Date:        date,
					Items:       []string{h.Name},
					HabitIDs:    []int64{h.ID},
				})
			}
		}
	}

	return result
}

// ValidateMoods checks stored mood entries
func (v *Validator) ValidateMoods(moods []models.MoodEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	now := v.now()

	for _, m := range moods {
		if strings.TrimSpace(m.MoodLabel) == "" || strings.TrimSpace(m.MoodEmoji) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictIncompleteMood,
				Description: fmt.Sprintf("Mood %d is missing a label or emoji", m.ID),
				Date:        m.Date.UTC().Format(constants.DateFormat),
			})
		}
		if m.Date.After(now) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureMood,
				Description: fmt.Sprintf("Mood %d is dated in the future (%s)", m.ID, m.Date.UTC().Format(time.RFC3339)),
				Date:        m.Date.UTC().Format(constants.DateFormat),
				Items:       []string{m.MoodLabel},
			})
		}
	}

	return result
}

// ValidateCompletionCounts reports orphaned and duplicated completion rows
// found directly in the store.
func (v *Validator) ValidateCompletionCounts(orphans, duplicates int) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if orphans > 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictOrphanCompletion,
			Description: fmt.Sprintf("%d completion(s) reference a habit that no longer exists", orphans),
		})
	}
	if duplicates > 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateCompletion,
			Description: fmt.Sprintf("%d surplus completion row(s) share a habit and date", duplicates),
		})
	}

	return result
}
