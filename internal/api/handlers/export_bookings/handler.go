package export_bookings

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
	"github.com/Mkaniukov/carwash-crm/internal/service/export"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	msgInvalidScheduleID = "некорректный ID расписания"
	msgInvalidQuery      = "некорректные параметры: from, to в формате YYYY-MM-DD"
	msgInvalidRange      = "некорректный период выгрузки"
)

type Handler struct {
	service ExportService
	logger  Logger
}

func NewHandler(service ExportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules/{scheduleId}/export?from=YYYY-MM-DD&to=YYYY-MM-DD
// to включительно. Только владелец
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := handlers.PathInt64(r, "scheduleId")
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/export - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	to = to.AddDate(0, 0, 1)

	// Книга собирается в память, чтобы ошибка не оборвала уже начатый ответ
	var buf bytes.Buffer
	if err := h.service.Bookings(r.Context(), scheduleID, from, to, &buf); err != nil {
		switch {
		case errors.Is(err, export.ErrInvalidTimeRange), errors.Is(err, export.ErrRangeTooLong):
			h.logger.Warn("GET /schedules/{id}/export - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /schedules/{id}/export - Failed to export: schedule_id=%d, error=%v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(from, to.AddDate(0, 0, -1))))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /schedules/{id}/export - Failed to write response: %v", err)
	}
}
