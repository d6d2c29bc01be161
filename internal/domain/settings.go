package domain

import (
	"time"

	"github.com/Mkaniukov/carwash-crm/pkg/types"
)

// ScheduleSettings persisted configuration of a schedule (opening hours and booking policy)
type ScheduleSettings struct {
	ScheduleID              int64
	WorkStart               types.TimeString
	WorkEnd                 types.TimeString
	WorkingDays             []Weekday
	DaysOff                 []string
	SlotIntervalMinutes     int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = unlimited
	UpdatedAt               time.Time
}

// DefaultScheduleSettings settings used when nothing is stored yet
func DefaultScheduleSettings(scheduleID int64) *ScheduleSettings {
	days := make([]Weekday, len(DefaultWorkingDays))
	copy(days, DefaultWorkingDays)

	return &ScheduleSettings{
		ScheduleID:              scheduleID,
		WorkStart:               types.MustTimeString(DefaultWorkStart),
		WorkEnd:                 types.MustTimeString(DefaultWorkEnd),
		WorkingDays:             days,
		DaysOff:                 []string{},
		SlotIntervalMinutes:     DefaultSlotIntervalMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}

// WorkingSchedule builds the validated schedule model
func (s *ScheduleSettings) WorkingSchedule() (*WorkingSchedule, error) {
	return NewWorkingSchedule(s.ScheduleID, s.WorkStart, s.WorkEnd, s.WorkingDays, s.DaysOff)
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *ScheduleSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// LatestBookableDate returns the last date that may be booked relative to now.
// The second value is false when there is no limit.
func (s *ScheduleSettings) LatestBookableDate(now time.Time) (time.Time, bool) {
	if !s.HasAdvanceBookingLimit() {
		return time.Time{}, false
	}
	return DateOnly(now).AddDate(0, 0, s.AdvanceBookingDays), true
}

// EarliestBookableStart returns the earliest start allowed by the notice period
func (s *ScheduleSettings) EarliestBookableStart(now time.Time) time.Time {
	return AddMinutes(now, s.MinBookingNoticeMinutes)
}
