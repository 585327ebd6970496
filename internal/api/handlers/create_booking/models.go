package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	createBooking "github.com/m04kA/SMC-ClinicScheduling/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PractitionerID int64   `json:"practitionerId" validate:"required,gt=0"`
	PatientID      int64   `json:"patientId" validate:"required,gt=0"`
	Date           string  `json:"date" validate:"required"`      // "2025-01-06"
	StartTime      string  `json:"startTime" validate:"required"` // "10:00" или "10:00:00"
	Reason         *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64   `json:"id"`
	PractitionerID int64   `json:"practitionerId"`
	PatientID      int64   `json:"patientId"`
	OfficeID       int64   `json:"officeId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	Reason         *string `json:"reason,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// WorkWindowDTO рабочее окно, возвращается клиенту при записи вне графика
type WorkWindowDTO struct {
	OfficeID   int64  `json:"officeId"`
	OfficeName string `json:"officeName"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// OutsideWorkWindowResponse данные ответа 422
type OutsideWorkWindowResponse struct {
	StartTime   string          `json:"startTime"`
	WorkWindows []WorkWindowDTO `json:"workWindows"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(identity domain.Identity) *createBooking.Request {
	return &createBooking.Request{
		Identity:       identity,
		PractitionerID: r.PractitionerID,
		PatientID:      r.PatientID,
		Date:           r.Date,
		StartTime:      r.StartTime,
		Reason:         r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		PractitionerID: resp.PractitionerID,
		PatientID:      resp.PatientID,
		OfficeID:       resp.OfficeID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		Reason:         resp.Reason,
		Status:         string(resp.Status),
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromSchedulingError формирует подсказку с рабочими окнами на дату
func FromSchedulingError(err *createBooking.SchedulingError) *OutsideWorkWindowResponse {
	windows := make([]WorkWindowDTO, len(err.Windows))
	for i, w := range err.Windows {
		windows[i] = WorkWindowDTO{
			OfficeID:   w.OfficeID,
			OfficeName: w.OfficeName,
			StartTime:  w.StartTime.String(),
			EndTime:    w.EndTime.String(),
		}
	}
	return &OutsideWorkWindowResponse{
		StartTime:   err.StartTime.String(),
		WorkWindows: windows,
	}
}
