package compliance

import "time"

const day = 24 * time.Hour

// dateOf strips the clock from t, keeping the calendar date in t's own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole calendar days from "from" to "to" (negative when to is earlier).
// Each argument is read in its own location, so pass now in the server's zone and
// stored dates as they were scanned.
func DaysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)) / day)
}

// AddDays returns the calendar date n days after t.
func AddDays(t time.Time, n int) time.Time {
	return dateOf(t).AddDate(0, 0, n)
}
