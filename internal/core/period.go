package core

import (
	"fmt"
	"strings"
	"time"
)

// Period is a named relative date window anchored to a reference instant.
type Period string

const (
	PeriodDay   Period = "D"
	PeriodWeek  Period = "W"
	PeriodMonth Period = "M"
	PeriodYear  Period = "Y"
	PeriodAll   Period = "ALL"
)

// DefaultPeriod is the documented fallback for unrecognized period tags.
const DefaultPeriod = PeriodDay

// ParsePeriod parses a period tag case-insensitively. Unknown tags return
// DefaultPeriod together with an error so callers can log and continue.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToUpper(strings.TrimSpace(s))) {
	case PeriodDay:
		return PeriodDay, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodYear:
		return PeriodYear, nil
	case PeriodAll:
		return PeriodAll, nil
	default:
		return DefaultPeriod, fmt.Errorf("unknown period tag %q", s)
	}
}

// PeriodRange resolves the inclusive [start, end] window for a period
// relative to ref. Week starts on Monday, Month and Year on the first of
// the unit, All spans from the zero instant.
func PeriodRange(ref time.Time, p Period) (start, end time.Time) {
	end = ref
	switch p {
	case PeriodWeek:
		start = ref.AddDate(0, 0, -weekdayOffset(ref))
	case PeriodMonth:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	case PeriodYear:
		start = time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
	case PeriodAll:
		start = time.Time{}
	default: // PeriodDay
		start = ref
	}
	return start, end
}

// MonthToDate returns the [first-of-month, target] window used by the
// home dashboard.
func MonthToDate(target time.Time) (start, end time.Time) {
	return MonthToDateUntil(target, target)
}

// MonthToDateUntil returns [first-of-month(target), until] so callers can
// request a custom upper bound instead of always ending at target.
func MonthToDateUntil(target, until time.Time) (start, end time.Time) {
	start = time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, target.Location())
	return start, until
}

// InRange reports whether t falls inside the inclusive [start, end] window.
func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// WeekdayIndex returns the ISO weekday ordinal: Monday=0 .. Sunday=6.
func WeekdayIndex(t time.Time) int {
	return weekdayOffset(t)
}

// IsWorkday reports whether t falls on Monday through Friday.
func IsWorkday(t time.Time) bool {
	return weekdayOffset(t) < 5
}

func weekdayOffset(t time.Time) int {
	// time.Weekday has Sunday=0; shift to Monday=0.
	return (int(t.Weekday()) + 6) % 7
}

// WeekdayNames lists weekday names in ISO order, Monday first. Weekday
// reports always emit all seven.
var WeekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}
