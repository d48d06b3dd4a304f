// Package stats derives read-only analytical views over a merged urge-event
// set: per-period histograms, top reasons, peak buckets and gap lengths.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/resethq/reset-backend/internal/types"
)

// Period selects the trailing window ending at "now".
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// PeakSentinel is returned by PeakBucket for an empty histogram.
const PeakSentinel = "N/A"

// Bucket is one histogram bar. Label depends on the period: "2:00" for day,
// "Sun" for week, "14" for month, "Mar" for year.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ReasonCount is one top-reasons row.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// WindowStart returns the inclusive lower bound of the trailing window.
func WindowStart(period Period, now time.Time) time.Time {
	switch period {
	case PeriodDay:
		return now.AddDate(0, 0, -1)
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// FilterByPeriod keeps events with timestamps in [WindowStart, now].
func FilterByPeriod(events []types.UrgeEvent, period Period, now time.Time) []types.UrgeEvent {
	start := WindowStart(period, now)
	out := make([]types.UrgeEvent, 0, len(events))
	for _, ev := range events {
		t := ev.Time()
		if !t.Before(start) && !t.After(now) {
			out = append(out, ev)
		}
	}
	return out
}

// Histogram groups events into period-appropriate buckets, ordered by the
// natural bucket order (hour 0..23, Sun..Sat, 1..31, Jan..Dec), never by
// count. Buckets with no events are omitted.
func Histogram(events []types.UrgeEvent, period Period) []Bucket {
	type keyed struct {
		order int
		label string
	}
	counts := map[int]int{}
	labels := map[int]string{}

	for _, ev := range events {
		t := ev.Time()
		var k keyed
		switch period {
		case PeriodDay:
			k = keyed{order: t.Hour(), label: fmt.Sprintf("%d:00", t.Hour())}
		case PeriodWeek:
			wd := int(t.Weekday())
			k = keyed{order: wd, label: t.Weekday().String()[:3]}
		case PeriodMonth:
			k = keyed{order: t.Day(), label: fmt.Sprintf("%d", t.Day())}
		case PeriodYear:
			m := int(t.Month())
			k = keyed{order: m, label: t.Month().String()[:3]}
		default:
			continue
		}
		counts[k.order]++
		labels[k.order] = k.label
	}

	orders := make([]int, 0, len(counts))
	for o := range counts {
		orders = append(orders, o)
	}
	sort.Ints(orders)

	out := make([]Bucket, 0, len(orders))
	for _, o := range orders {
		out = append(out, Bucket{Label: labels[o], Count: counts[o]})
	}
	return out
}

// TopReasons counts non-empty, whitespace-trimmed reasons by exact equality
// and returns the top n descending by count. Ties keep first-encountered
// order.
func TopReasons(events []types.UrgeEvent, n int) []ReasonCount {
	counts := map[string]int{}
	firstSeen := map[string]int{}

	for i, ev := range events {
		reason := strings.TrimSpace(ev.Reason)
		if reason == "" {
			continue
		}
		if _, ok := counts[reason]; !ok {
			firstSeen[reason] = i
		}
		counts[reason]++
	}

	out := make([]ReasonCount, 0, len(counts))
	for reason, count := range counts {
		out = append(out, ReasonCount{Reason: reason, Count: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Reason] < firstSeen[out[j].Reason]
	})

	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// PeakBucket returns the label of the bucket with the maximum count, or the
// "N/A" sentinel for an empty histogram.
func PeakBucket(histogram []Bucket) string {
	if len(histogram) == 0 {
		return PeakSentinel
	}
	peak := histogram[0]
	for _, b := range histogram[1:] {
		if b.Count > peak.Count {
			peak = b
		}
	}
	return peak.Label
}

// LongestGapDays returns the longest run of consecutive calendar days with
// zero events strictly between two event days. Empty and single-day sets
// yield 0.
func LongestGapDays(events []types.UrgeEvent) int {
	if len(events) == 0 {
		return 0
	}

	// Day keys are rebuilt in UTC so consecutive entries are exactly 24h
	// apart regardless of DST in the source location.
	seen := map[time.Time]struct{}{}
	days := make([]time.Time, 0, len(events))
	for _, ev := range events {
		t := ev.Time()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	maxGap := 0
	for i := 1; i < len(days); i++ {
		gap := int(days[i].Sub(days[i-1]).Hours()/24) - 1
		if gap > maxGap {
			maxGap = gap
		}
	}
	return maxGap
}

// TodayCount counts events on now's calendar day.
func TodayCount(events []types.UrgeEvent, now time.Time) int {
	count := 0
	for _, ev := range events {
		t := ev.Time().In(now.Location())
		if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
			count++
		}
	}
	return count
}

// WeeklyAverage is the trailing 7-day event count divided by 7.
func WeeklyAverage(events []types.UrgeEvent, now time.Time) float64 {
	return float64(len(FilterByPeriod(events, PeriodWeek, now))) / 7.0
}

// PeakHour is the hour of day (0-23) with the most events; 0 when there are
// none.
func PeakHour(events []types.UrgeEvent) int {
	counts := map[int]int{}
	for _, ev := range events {
		counts[ev.Time().Hour()]++
	}
	peakHour, peakCount := 0, 0
	for hour, count := range counts {
		if count > peakCount || (count == peakCount && hour < peakHour && peakCount > 0) {
			peakHour, peakCount = hour, count
		}
	}
	return peakHour
}
