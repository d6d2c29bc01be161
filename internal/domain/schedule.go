package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/Mkaniukov/carwash-crm/pkg/types"
)

// WorkingSchedule describes when the car wash accepts bookings.
// It is immutable once constructed.
type WorkingSchedule struct {
	scheduleID int64
	startOfDay types.TimeString
	endOfDay   types.TimeString
	weekdays   map[Weekday]struct{}
	daysOff    map[string]struct{}
}

// NewWorkingSchedule validates the configuration and builds a schedule.
// startOfDay must be strictly before endOfDay, weekdays must be a non-empty
// subset of 1..7 and every day off must be a valid YYYY-MM-DD date.
func NewWorkingSchedule(
	scheduleID int64,
	startOfDay, endOfDay types.TimeString,
	weekdays []Weekday,
	daysOff []string,
) (*WorkingSchedule, error) {
	if err := startOfDay.Validate(); err != nil {
		return nil, fmt.Errorf("%w: start of day: %w", ErrConfiguration, err)
	}
	if err := endOfDay.Validate(); err != nil {
		return nil, fmt.Errorf("%w: end of day: %w", ErrConfiguration, err)
	}
	if !startOfDay.IsBefore(endOfDay) {
		return nil, fmt.Errorf("%w: start of day %s must be before end of day %s", ErrConfiguration, startOfDay, endOfDay)
	}

	if len(weekdays) == 0 {
		return nil, fmt.Errorf("%w: at least one working weekday is required", ErrConfiguration)
	}
	weekdaySet := make(map[Weekday]struct{}, len(weekdays))
	for _, d := range weekdays {
		if !d.Valid() {
			return nil, fmt.Errorf("%w: weekday %d is out of range 1..7", ErrConfiguration, int(d))
		}
		weekdaySet[d] = struct{}{}
	}

	offSet := make(map[string]struct{}, len(daysOff))
	for _, s := range daysOff {
		date, err := ParseISODate(s)
		if err != nil {
			return nil, fmt.Errorf("%w: day off: %w", ErrConfiguration, err)
		}
		offSet[ISODate(date)] = struct{}{}
	}

	return &WorkingSchedule{
		scheduleID: scheduleID,
		startOfDay: startOfDay,
		endOfDay:   endOfDay,
		weekdays:   weekdaySet,
		daysOff:    offSet,
	}, nil
}

func (s *WorkingSchedule) ScheduleID() int64 {
	return s.scheduleID
}

func (s *WorkingSchedule) StartOfDay() types.TimeString {
	return s.startOfDay
}

func (s *WorkingSchedule) EndOfDay() types.TimeString {
	return s.endOfDay
}

// WorkingWeekdays returns a sorted copy of the working weekdays
func (s *WorkingSchedule) WorkingWeekdays() []Weekday {
	result := make([]Weekday, 0, len(s.weekdays))
	for d := range s.weekdays {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// DaysOff returns a sorted copy of the days off
func (s *WorkingSchedule) DaysOff() []string {
	result := make([]string, 0, len(s.daysOff))
	for d := range s.daysOff {
		result = append(result, d)
	}
	sort.Strings(result)
	return result
}

// IsDayOff reports whether the date is explicitly closed
func (s *WorkingSchedule) IsDayOff(date time.Time) bool {
	_, off := s.daysOff[ISODate(date)]
	return off
}

// IsWorkingDay reports whether the weekday is a working one and the date is not a day off
func (s *WorkingSchedule) IsWorkingDay(date time.Time) bool {
	if _, ok := s.weekdays[WeekdayOf(date)]; !ok {
		return false
	}
	return !s.IsDayOff(date)
}

// OpensAt returns the opening moment on the given date
func (s *WorkingSchedule) OpensAt(date time.Time) time.Time {
	return at(date, s.startOfDay)
}

// ClosesAt returns the closing moment on the given date
func (s *WorkingSchedule) ClosesAt(date time.Time) time.Time {
	return at(date, s.endOfDay)
}

// Contains reports whether [start, end) lies within working hours of a working day
func (s *WorkingSchedule) Contains(start, end time.Time) bool {
	if !s.IsWorkingDay(start) {
		return false
	}
	return !start.Before(s.OpensAt(start)) && !end.After(s.ClosesAt(start))
}
