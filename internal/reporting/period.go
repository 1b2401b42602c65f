package reporting

import (
	"fmt"
	"time"
)

// Period is a named reporting date range.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod validates a period name. An empty string defaults to today.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return Period(s), nil
	case "":
		return PeriodToday, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// PeriodRange resolves a period to a half-open interval [start, end) in the
// server's local time zone: today is local midnight to the next midnight,
// week is the trailing seven days up to now, month is the current calendar
// month.
func PeriodRange(p Period, now time.Time) (start, end time.Time) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), now
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	default: // today
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 0, 1)
	}
}

// singleDay reports whether the period spans one calendar day, which is when
// the hourly histogram is meaningful.
func (p Period) singleDay() bool {
	return p == PeriodToday
}
