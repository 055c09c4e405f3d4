// Package calendar does arithmetic on ISO calendar dates (YYYY-MM-DD) with
// no time-of-day component.
package calendar

import (
	"time"
)

// Layout is the ISO date layout used for every stored date.
const Layout = "2006-01-02"

// Today returns the current local calendar date.
func Today() string {
	return TodayAt(time.Now())
}

// TodayAt returns the local calendar date of t.
func TodayAt(t time.Time) string {
	return t.Local().Format(Layout)
}

// Parse reads an ISO date as midnight UTC. Using UTC keeps day arithmetic
// free of daylight-saving offsets.
func Parse(date string) (time.Time, error) {
	return time.ParseInLocation(Layout, date, time.UTC)
}

// IsValid reports whether date is a well-formed ISO calendar date.
func IsValid(date string) bool {
	_, err := Parse(date)
	return err == nil
}

// DaysBetween returns the number of whole days from start to end. The result
// is negative when end is before start and 0 when either date is malformed.
func DaysBetween(start, end string) int {
	s, err := Parse(start)
	if err != nil {
		return 0
	}
	e, err := Parse(end)
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Hours() / 24)
}

// AddDays returns the date n days after date. n may be negative. A malformed
// date is returned unchanged.
func AddDays(date string, n int) string {
	d, err := Parse(date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, n).Format(Layout)
}

// FormatDate renders a date for display, e.g. "Mon, Feb 10".
func FormatDate(date string) string {
	d, err := Parse(date)
	if err != nil {
		return date
	}
	return d.Format("Mon, Jan 2")
}
