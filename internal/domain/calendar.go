package domain

import (
	"fmt"
	"time"

	"github.com/Mkaniukov/carwash-crm/pkg/types"
)

// Weekday day of week, Monday=1 ... Sunday=7
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Valid reports whether d is within 1..7
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// WeekdayOf is the single place where a calendar date is mapped to a Weekday.
func WeekdayOf(date time.Time) Weekday {
	wd := date.Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// Combine builds a local timestamp from a calendar date and a time of day.
// Times are naive: the date's location is kept and no conversion happens.
func Combine(date time.Time, tod types.TimeString) (time.Time, error) {
	if err := tod.Validate(); err != nil {
		return time.Time{}, err
	}
	return at(date, tod), nil
}

func at(date time.Time, tod types.TimeString) time.Time {
	y, m, d := date.Date()
	seconds := tod.Seconds()
	return time.Date(y, m, d, seconds/3600, seconds%3600/60, seconds%60, 0, date.Location())
}

// AddMinutes shifts a timestamp by a whole number of minutes
func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// ISODate formats the calendar date part as YYYY-MM-DD
func ISODate(date time.Time) string {
	return date.Format(DateFormat)
}

// ParseISODate parses YYYY-MM-DD into midnight of that day
func ParseISODate(s string) (time.Time, error) {
	date, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidTimeFormat, s)
	}
	return date, nil
}

// ParseLocalDateTime parses YYYY-MM-DDTHH:MM[:SS] without zone information
func ParseLocalDateTime(s string) (time.Time, error) {
	for _, layout := range []string{DateTimeFormat, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: datetime %q", ErrInvalidTimeFormat, s)
}

// DateOnly truncates a timestamp to midnight of its calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether both timestamps fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Overlaps reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
