package get_available_slots

import (
	"strconv"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
	getAvailableSlots "github.com/Mkaniukov/carwash-crm/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ScheduleID      int64           `json:"schedule_id"`
	Date            string          `json:"date"`
	DurationMinutes int             `json:"duration_minutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot свободный интервал
type AvailableSlot struct {
	StartTime string `json:"start_time"` // "2025-10-15T09:00:00"
	EndTime   string `json:"end_time"`
	Label     string `json:"label"` // "09:00"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.Format(domain.DateTimeFormat),
			EndTime:   slot.EndTime.Format(domain.DateTimeFormat),
			Label:     slot.StartTime.Format(domain.TimeFormat),
		}
	}

	return &AvailableSlotsResponse{
		ScheduleID:      resp.ScheduleID,
		Date:            domain.ISODate(resp.Date),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(scheduleID int64, date time.Time, serviceID *int64, durationStr string) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{
		ScheduleID: scheduleID,
		Date:       date,
		ServiceID:  serviceID,
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = &duration
	}

	return req, nil
}
