package utils

import "testing"

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name        string
		completions []string
		today       string
		want        int
	}{
		{name: "no completions", completions: nil, today: "2026-04-10", want: 0},
		{name: "only today", completions: []string{"2026-04-10"}, today: "2026-04-10", want: 1},
		{
			name:        "run ending today",
			completions: []string{"2026-04-10", "2026-04-09", "2026-04-08", "2026-04-05"},
			today:       "2026-04-10",
			want:        3,
		},
		{
			name:        "today pending, run ending yesterday",
			completions: []string{"2026-04-09", "2026-04-08"},
			today:       "2026-04-10",
			want:        2,
		},
		{
			name:        "gap before yesterday breaks the streak",
			completions: []string{"2026-04-08", "2026-04-07"},
			today:       "2026-04-10",
			want:        0,
		},
		{
			name:        "crosses a month boundary",
			completions: []string{"2026-03-01", "2026-02-28", "2026-02-27"},
			today:       "2026-03-01",
			want:        3,
		},
		{
			name:        "unordered input",
			completions: []string{"2026-04-08", "2026-04-10", "2026-04-09"},
			today:       "2026-04-10",
			want:        3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.completions, tt.today); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name        string
		completions []string
		created     string
		today       string
		want        int
	}{
		{name: "created today, not done", created: "2026-04-10", today: "2026-04-10", want: 0},
		{name: "created today, done", completions: []string{"2026-04-10"}, created: "2026-04-10", today: "2026-04-10", want: 100},
		{
			name:        "one of three days",
			completions: []string{"2026-04-09"},
			created:     "2026-04-08",
			today:       "2026-04-10",
			want:        33,
		},
		{
			name:        "two of three days rounds up",
			completions: []string{"2026-04-09", "2026-04-10"},
			created:     "2026-04-08",
			today:       "2026-04-10",
			want:        67,
		},
		{
			name:        "dates before creation or after today ignored",
			completions: []string{"2026-04-01", "2026-04-10", "2026-04-12"},
			created:     "2026-04-09",
			today:       "2026-04-10",
			want:        50,
		},
		{name: "created after today", created: "2026-04-11", today: "2026-04-10", want: 0},
		{name: "bad date", created: "bogus", today: "2026-04-10", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionRate(tt.completions, tt.created, tt.today); got != tt.want {
				t.Errorf("CompletionRate() = %d, want %d", got, tt.want)
			}
		})
	}
}
