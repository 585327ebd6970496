package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
)

// validateRequest валидирует запрос и возвращает дату в часовом поясе клиники
func validateRequest(req *Request, loc *time.Location) (time.Time, error) {
	if req.PractitionerID <= 0 {
		return time.Time{}, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, req.Date)
	}

	return date, nil
}
