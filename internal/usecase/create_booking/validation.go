package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

// validateRequest валидирует входные данные и возвращает разобранные дату и время
func validateRequest(req *Request, loc *time.Location) (time.Time, types.TimeString, error) {
	if req.PractitionerID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if req.PatientID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return time.Time{}, "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, loc)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, req.Date)
	}

	if req.StartTime == "" {
		return time.Time{}, "", fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Запись возможна только на время из сетки
	if !domain.IsCatalogTime(startTime) {
		return time.Time{}, "", fmt.Errorf("%w: startTime %s is not a catalog slot", ErrInvalidInput, startTime)
	}

	if req.Reason != nil && len([]rune(*req.Reason)) > domain.MaxReasonLength {
		return time.Time{}, "", fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return date, startTime, nil
}

// hasBookingAt есть ли неотмененная запись ровно на это время
func hasBookingAt(bookings []*domain.Booking, startTime types.TimeString) bool {
	for _, b := range bookings {
		if b.IsActive() && b.StartTime.Equal(startTime) {
			return true
		}
	}
	return false
}
