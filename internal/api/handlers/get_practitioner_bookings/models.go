package get_practitioner_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Дата и статус проверяются сервисом.
func ToServiceRequest(
	identity domain.Identity,
	practitionerID int64,
	dateStr string,
	statusStr string,
	includeCancelledStr string,
) (*models.GetPractitionerBookingsRequest, error) {
	req := &models.GetPractitionerBookingsRequest{
		Identity:       identity,
		PractitionerID: practitionerID,
	}

	if dateStr != "" {
		req.Date = &dateStr
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
