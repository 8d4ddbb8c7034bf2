package core

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in  string
		out Period
		ok  bool
	}{
		{"D", PeriodDay, true},
		{"w", PeriodWeek, true},
		{"M", PeriodMonth, true},
		{"y", PeriodYear, true},
		{"all", PeriodAll, true},
		{" ALL ", PeriodAll, true},
		{"Q", DefaultPeriod, false},
		{"", DefaultPeriod, false},
	}
	for _, tc := range cases {
		got, err := ParsePeriod(tc.in)
		if got != tc.out {
			t.Errorf("ParsePeriod(%q) = %q, want %q", tc.in, got, tc.out)
		}
		if tc.ok && err != nil {
			t.Errorf("ParsePeriod(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParsePeriod(%q) expected error", tc.in)
		}
	}
}

func TestPeriodRange(t *testing.T) {
	// Thursday, 15 October 2020.
	ref := time.Date(2020, 10, 15, 12, 30, 0, 0, time.UTC)

	cases := []struct {
		p     Period
		start time.Time
	}{
		{PeriodDay, ref},
		{PeriodWeek, time.Date(2020, 10, 12, 12, 30, 0, 0, time.UTC)}, // Monday
		{PeriodMonth, time.Date(2020, 10, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodAll, time.Time{}},
	}
	for _, tc := range cases {
		start, end := PeriodRange(ref, tc.p)
		if !start.Equal(tc.start) {
			t.Errorf("%s: start = %v, want %v", tc.p, start, tc.start)
		}
		if !end.Equal(ref) {
			t.Errorf("%s: end = %v, want %v", tc.p, end, ref)
		}
		if start.After(end) {
			t.Errorf("%s: start after end", tc.p)
		}
	}
}

// Windows are nested: Day is contained in Week, Week in Month, Month in
// Year, Year in All, for a fixed reference.
func TestPeriodRangeNesting(t *testing.T) {
	refs := []time.Time{
		time.Date(2020, 10, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),  // Monday, early January
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), // leap day
		time.Date(2020, 12, 31, 6, 0, 0, 0, time.UTC),
	}
	order := []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll}
	for _, ref := range refs {
		prev, _ := PeriodRange(ref, order[0])
		for _, p := range order[1:] {
			start, _ := PeriodRange(ref, p)
			if start.After(prev) {
				t.Errorf("ref %v: %s window starts after the narrower one (%v > %v)", ref, p, start, prev)
			}
			prev = start
		}
	}
}

func TestPeriodRangeWeekStartsMonday(t *testing.T) {
	// Monday reference: the week window collapses to the reference day.
	mon := time.Date(2020, 10, 12, 9, 0, 0, 0, time.UTC)
	start, _ := PeriodRange(mon, PeriodWeek)
	if !start.Equal(mon) {
		t.Errorf("Monday week start = %v, want %v", start, mon)
	}

	// Sunday reference: the window reaches back six days.
	sun := time.Date(2020, 10, 18, 9, 0, 0, 0, time.UTC)
	start, _ = PeriodRange(sun, PeriodWeek)
	want := time.Date(2020, 10, 12, 9, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("Sunday week start = %v, want %v", start, want)
	}
}

func TestMonthToDate(t *testing.T) {
	target := time.Date(2020, 9, 6, 9, 53, 56, 0, time.UTC)
	start, end := MonthToDate(target)
	if !start.Equal(time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(target) {
		t.Errorf("end = %v", end)
	}

	until := time.Date(2020, 9, 10, 0, 0, 0, 0, time.UTC)
	_, end = MonthToDateUntil(target, until)
	if !end.Equal(until) {
		t.Errorf("custom end = %v, want %v", end, until)
	}
}

func TestWeekdayIndex(t *testing.T) {
	// 12 Oct 2020 was a Monday.
	for i := 0; i < 7; i++ {
		d := time.Date(2020, 10, 12+i, 0, 0, 0, 0, time.UTC)
		if got := WeekdayIndex(d); got != i {
			t.Errorf("WeekdayIndex(%v) = %d, want %d", d, got, i)
		}
	}
	if !IsWorkday(time.Date(2020, 10, 16, 0, 0, 0, 0, time.UTC)) {
		t.Error("Friday should be a workday")
	}
	if IsWorkday(time.Date(2020, 10, 17, 0, 0, 0, 0, time.UTC)) {
		t.Error("Saturday should not be a workday")
	}
}
