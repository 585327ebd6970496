package get_work_windows

import (
	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
)

// WorkWindowsResponse HTTP response model
type WorkWindowsResponse struct {
	Date           string          `json:"date"`
	PractitionerID int64           `json:"practitionerId"`
	Scheduled      bool            `json:"scheduled"`
	WorkWindows    []WorkWindowDTO `json:"workWindows"`
}

// WorkWindowDTO рабочее окно врача в кабинете
type WorkWindowDTO struct {
	OfficeID   int64  `json:"officeId"`
	OfficeName string `json:"officeName"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// FromDomainWorkWindows конвертирует окна в HTTP response
func FromDomainWorkWindows(practitionerID int64, date string, windows []domain.WorkWindow) *WorkWindowsResponse {
	dtos := make([]WorkWindowDTO, len(windows))
	for i, w := range windows {
		dtos[i] = WorkWindowDTO{
			OfficeID:   w.OfficeID,
			OfficeName: w.OfficeName,
			StartTime:  w.StartTime.String(),
			EndTime:    w.EndTime.String(),
		}
	}

	return &WorkWindowsResponse{
		Date:           date,
		PractitionerID: practitionerID,
		Scheduled:      len(windows) > 0,
		WorkWindows:    dtos,
	}
}
