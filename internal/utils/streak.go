package utils

import "math"

// CurrentStreak counts consecutive completed days ending on today. When today
// is not completed yet the run ending yesterday still counts.
func CurrentStreak(completions []string, today string) int {
	done := make(map[string]struct{}, len(completions))
	for _, d := range completions {
		done[d] = struct{}{}
	}

	day := today
	if _, ok := done[day]; !ok {
		prev, err := AddDays(today, -1)
		if err != nil {
			return 0
		}
		day = prev
	}

	streak := 0
	for {
		if _, ok := done[day]; !ok {
			return streak
		}
		streak++
		prev, err := AddDays(day, -1)
		if err != nil {
			return streak
		}
		day = prev
	}
}

// CompletionRate returns the share of days from created through today
// (inclusive) with a completion, as a rounded percentage in [0, 100].
// Completions outside that range are ignored.
func CompletionRate(completions []string, created, today string) int {
	span, err := DaysBetween(created, today)
	if err != nil || span < 0 {
		return 0
	}
	totalDays := span + 1

	seen := make(map[string]struct{}, len(completions))
	for _, d := range completions {
		if d < created || d > today {
			continue
		}
		seen[d] = struct{}{}
	}

	rate := int(math.Round(float64(len(seen)) / float64(totalDays) * 100))
	if rate > 100 {
		return 100
	}
	return rate
}
