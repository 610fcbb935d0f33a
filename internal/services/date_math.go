package services

import (
	"math"
	"time"
)

// DaysUntil returns the number of whole calendar days from now until
// target. Both instants are normalized to midnight in now's location, so
// the result is independent of the time of day the sweep runs. Negative
// means the date has passed; zero means it expires today.
func DaysUntil(now, target time.Time) int {
	today := midnight(now, now.Location())
	end := midnight(target, now.Location())

	diff := end.Sub(today)
	// Ceil keeps the count stable across DST transitions (23h/25h days).
	return int(math.Ceil(diff.Hours() / 24))
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
