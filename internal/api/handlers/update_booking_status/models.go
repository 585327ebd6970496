package update_booking_status

import (
	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(identity domain.Identity) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Identity: identity,
		Status:   r.Status,
	}
}
