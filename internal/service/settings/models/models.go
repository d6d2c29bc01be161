package models

import (
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек расписания
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	ScheduleID              int64        `json:"-"`
	UserID                  int64        `json:"-"`
	WorkStart               *string      `json:"work_start,omitempty"`
	WorkEnd                 *string      `json:"work_end,omitempty"`
	WorkingDays             *WorkingDays `json:"working_days,omitempty"`
	SlotIntervalMinutes     *int         `json:"slot_interval_minutes,omitempty"`
	MinBookingNoticeMinutes *int         `json:"min_booking_notice_minutes,omitempty"`
	AdvanceBookingDays      *int         `json:"advance_booking_days,omitempty"`
}

// Response модели

// PublicSettingsResponse настройки для публичного календаря
type PublicSettingsResponse struct {
	WorkStart   string      `json:"work_start"` // "07:30:00"
	WorkEnd     string      `json:"work_end"`
	WorkingDays WorkingDays `json:"working_days"` // "0,1,2,3,4"
}

// SettingsResponse полные настройки расписания
type SettingsResponse struct {
	PublicSettingsResponse
	ScheduleID              int64      `json:"schedule_id"`
	DaysOff                 []string   `json:"days_off"`
	SlotIntervalMinutes     int        `json:"slot_interval_minutes"`
	MinBookingNoticeMinutes int        `json:"min_booking_notice_minutes"`
	AdvanceBookingDays      int        `json:"advance_booking_days"`
	UpdatedAt               *time.Time `json:"updated_at,omitempty"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ScheduleSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	daysOff := make([]string, len(s.DaysOff))
	copy(daysOff, s.DaysOff)

	resp := &SettingsResponse{
		PublicSettingsResponse: PublicSettingsResponse{
			WorkStart:   s.WorkStart.HHMMSS(),
			WorkEnd:     s.WorkEnd.HHMMSS(),
			WorkingDays: FromDomainWeekdays(s.WorkingDays),
		},
		ScheduleID:              s.ScheduleID,
		DaysOff:                 daysOff,
		SlotIntervalMinutes:     s.SlotIntervalMinutes,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
	}

	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
