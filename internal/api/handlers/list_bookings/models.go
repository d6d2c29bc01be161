package list_bookings

import (
	"fmt"
	"net/http"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
	"github.com/Mkaniukov/carwash-crm/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров.
// from и to - даты YYYY-MM-DD включительно; без to берётся один день from
func ToServiceRequest(r *http.Request, scheduleID int64) (*models.ListByRangeRequest, error) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}

	to := from
	if r.URL.Query().Get("to") != "" {
		if to, err = handlers.QueryDate(r, "to"); err != nil {
			return nil, err
		}
	}

	includeCanceled, err := handlers.QueryBool(r, "includeCanceled")
	if err != nil {
		return nil, fmt.Errorf("invalid includeCanceled: %w", err)
	}

	req := &models.ListByRangeRequest{
		ScheduleID:      scheduleID,
		From:            from,
		To:              to.AddDate(0, 0, 1),
		IncludeCanceled: includeCanceled,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}
