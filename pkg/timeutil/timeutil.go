// Package timeutil holds the date-window arithmetic used by filters and
// analytics. Windows over calendar dates are inclusive at both ends:
// [start-of-day, end-of-day] in UTC.
package timeutil

import "time"

// StartOfDayUTC returns midnight UTC of t's calendar date.
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDayUTC returns the last representable instant of t's calendar date
// in UTC. A timestamp one nanosecond later falls on the next day.
func EndOfDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DaysAgoUTC returns midnight UTC of the date n days before now.
func DaysAgoUTC(now time.Time, n int) time.Time {
	return StartOfDayUTC(now).AddDate(0, 0, -n)
}
