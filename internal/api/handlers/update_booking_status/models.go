package update_booking_status

import "github.com/Mkaniukov/carwash-crm/internal/service/bookings/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(bookingID, staffID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		BookingID: bookingID,
		StaffID:   staffID,
		Status:    r.Status,
	}
}
