package stats

import (
	"testing"
	"time"

	"github.com/resethq/reset-backend/internal/types"
)

func eventAt(t time.Time, reason string) types.UrgeEvent {
	return types.UrgeEvent{Timestamp: t.Unix(), Reason: reason}
}

func TestFilterByPeriod(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	events := []types.UrgeEvent{
		eventAt(now.Add(-2*time.Hour), "a"),
		eventAt(now.AddDate(0, 0, -3), "b"),
		eventAt(now.AddDate(0, 0, -20), "c"),
		eventAt(now.AddDate(0, -6, 0), "d"),
		eventAt(now.Add(time.Hour), "future"),
	}

	cases := []struct {
		period Period
		want   int
	}{
		{PeriodDay, 1},
		{PeriodWeek, 2},
		{PeriodMonth, 3},
		{PeriodYear, 4},
	}
	for _, tc := range cases {
		t.Run(string(tc.period), func(t *testing.T) {
			got := FilterByPeriod(events, tc.period, now)
			if len(got) != tc.want {
				t.Fatalf("FilterByPeriod(%s) kept %d events, want %d", tc.period, len(got), tc.want)
			}
		})
	}
}

func TestHistogramDayPeriod(t *testing.T) {
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	events := []types.UrgeEvent{
		eventAt(day.Add(14*time.Hour), ""),
		eventAt(day.Add(2*time.Hour), ""),
		eventAt(day.Add(2*time.Hour+30*time.Minute), ""),
	}

	got := Histogram(events, PeriodDay)
	want := []Bucket{{Label: "2:00", Count: 2}, {Label: "14:00", Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if peak := PeakBucket(got); peak != "2:00" {
		t.Fatalf("PeakBucket=%q, want %q", peak, "2:00")
	}
}

func TestHistogramWeekOrderedByWeekday(t *testing.T) {
	// 2025-06-15 is a Sunday.
	sunday := time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)
	events := []types.UrgeEvent{
		eventAt(sunday.AddDate(0, 0, 3), ""), // Wed
		eventAt(sunday, ""),
		eventAt(sunday.AddDate(0, 0, 3), ""), // Wed
	}

	got := Histogram(events, PeriodWeek)
	if len(got) != 2 || got[0].Label != "Sun" || got[1].Label != "Wed" || got[1].Count != 2 {
		t.Fatalf("unexpected histogram: %+v", got)
	}
}

func TestPeakBucketEmpty(t *testing.T) {
	if peak := PeakBucket(nil); peak != PeakSentinel {
		t.Fatalf("PeakBucket(nil)=%q, want %q", peak, PeakSentinel)
	}
}

func TestTopReasons(t *testing.T) {
	events := []types.UrgeEvent{
		eventAt(time.Unix(1, 0), "stress"),
		eventAt(time.Unix(2, 0), "stress"),
		eventAt(time.Unix(3, 0), "boredom"),
		eventAt(time.Unix(4, 0), "stress"),
		eventAt(time.Unix(5, 0), "   "),
		eventAt(time.Unix(6, 0), ""),
	}

	got := TopReasons(events, 1)
	if len(got) != 1 || got[0].Reason != "stress" || got[0].Count != 3 {
		t.Fatalf("TopReasons top-1 = %+v, want stress x3", got)
	}
}

func TestTopReasonsTieStability(t *testing.T) {
	events := []types.UrgeEvent{
		eventAt(time.Unix(1, 0), "party"),
		eventAt(time.Unix(2, 0), "work"),
		eventAt(time.Unix(3, 0), "party"),
		eventAt(time.Unix(4, 0), "work"),
	}

	got := TopReasons(events, 2)
	if len(got) != 2 || got[0].Reason != "party" || got[1].Reason != "work" {
		t.Fatalf("tie order broken: %+v", got)
	}
}

func TestLongestGapDays(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local)
	mkDay := func(dayNum int) types.UrgeEvent {
		return eventAt(base.AddDate(0, 0, dayNum-1), "")
	}

	cases := []struct {
		name   string
		events []types.UrgeEvent
		want   int
	}{
		{name: "empty", events: nil, want: 0},
		{name: "single_day", events: []types.UrgeEvent{mkDay(1)}, want: 0},
		{
			name:   "days_1_2_5_6",
			events: []types.UrgeEvent{mkDay(1), mkDay(2), mkDay(5), mkDay(6)},
			want:   2,
		},
		{
			name:   "adjacent_days_no_gap",
			events: []types.UrgeEvent{mkDay(3), mkDay(4)},
			want:   0,
		},
		{
			name:   "multiple_same_day",
			events: []types.UrgeEvent{mkDay(1), mkDay(1), mkDay(10)},
			want:   8,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LongestGapDays(tc.events)
			if got != tc.want {
				t.Fatalf("LongestGapDays=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestConvenienceValues(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.Local)
	events := []types.UrgeEvent{
		eventAt(now.Add(-1*time.Hour), "a"),
		eventAt(now.Add(-2*time.Hour), "b"),
		eventAt(now.AddDate(0, 0, -2), "c"),
		eventAt(now.AddDate(0, 0, -30), "d"),
	}

	if got := TodayCount(events, now); got != 2 {
		t.Fatalf("TodayCount=%d, want 2", got)
	}
	if got := WeeklyAverage(events, now); got != 3.0/7.0 {
		t.Fatalf("WeeklyAverage=%f, want %f", got, 3.0/7.0)
	}
	// Two events fall at 20:00 (today-2d and today-30d), one each at 18:00
	// and 19:00.
	if got := PeakHour(events); got != 20 {
		t.Fatalf("PeakHour=%d, want 20", got)
	}
}
