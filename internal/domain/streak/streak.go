// Package streak computes sober-streak lengths from an anchor instant.
// Streaks are measured in whole calendar days, not elapsed seconds: a reset
// at 23:59 followed by a check at 00:01 the next day counts as one day.
package streak

import "time"

// Days returns the number of calendar days between soberSince and now,
// evaluated in now's location. Negative spans (anchor in the future) clamp
// to zero.
func Days(soberSince, now time.Time) int {
	loc := now.Location()
	start := startOfDay(soberSince.In(loc))
	end := startOfDay(now)
	if end.Before(start) {
		return 0
	}
	days := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// Longest returns the longest-streak record after a reset: the streak being
// abandoned is folded in before the anchor moves, so the record can only
// grow.
func Longest(recorded, abandoned int) int {
	if abandoned > recorded {
		return abandoned
	}
	return recorded
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
