package cancel_booking

import (
	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(identity domain.Identity) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		Identity:           identity,
		CancellationReason: r.CancellationReason,
	}
}
