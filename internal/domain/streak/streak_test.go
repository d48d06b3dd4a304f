package streak

import (
	"testing"
	"time"
)

func TestDays(t *testing.T) {
	cases := []struct {
		name  string
		since time.Time
		now   time.Time
		want  int
	}{
		{
			name:  "same_instant",
			since: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			now:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "same_day_later",
			since: time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC),
			now:   time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "midnight_boundary_counts_as_one",
			since: time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC),
			now:   time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "forty_five_days",
			since: time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC),
			now:   time.Date(2025, 2, 15, 7, 0, 0, 0, time.UTC),
			want:  45,
		},
		{
			name:  "anchor_in_future_clamps",
			since: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			now:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "across_year_boundary",
			since: time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC),
			now:   time.Date(2025, 1, 2, 6, 0, 0, 0, time.UTC),
			want:  2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Days(tc.since, tc.now)
			if got != tc.want {
				t.Fatalf("Days(%v, %v)=%d, want %d", tc.since, tc.now, got, tc.want)
			}
		})
	}
}

func TestLongest(t *testing.T) {
	if got := Longest(30, 45); got != 45 {
		t.Fatalf("Longest(30,45)=%d, want 45", got)
	}
	if got := Longest(45, 10); got != 45 {
		t.Fatalf("Longest(45,10)=%d, want 45", got)
	}
	if got := Longest(45, 45); got != 45 {
		t.Fatalf("Longest(45,45)=%d, want 45", got)
	}
}
