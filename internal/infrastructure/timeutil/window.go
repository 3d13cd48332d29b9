package timeutil

import "time"

// StartOfDay truncates a time to midnight UTC of its calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the half-open one-day departure window
// [date 00:00, date + 24h) for the given calendar date.
func DayWindow(date time.Time) (time.Time, time.Time) {
	start := StartOfDay(date)
	return start, start.AddDate(0, 0, 1)
}

// FlexWindow returns the half-open window covering the calendar dates
// [date - days, date + days] inclusive, for flexible-date searches.
func FlexWindow(date time.Time, days int) (time.Time, time.Time) {
	start := StartOfDay(date).AddDate(0, 0, -days)
	end := StartOfDay(date).AddDate(0, 0, days+1)
	return start, end
}
