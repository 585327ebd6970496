package get_available_slots

import (
	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClinicScheduling/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date           string      `json:"date"`
	PractitionerID int64       `json:"practitionerId"`
	Scheduled      bool        `json:"scheduled"`
	Slots          []SlotDTO   `json:"slots"`
	WorkWindows    []WindowDTO `json:"workWindows"`
	BookedSlots    []string    `json:"booked_slots"`
}

// SlotDTO временной слот каталога
type SlotDTO struct {
	StartTime   string `json:"startTime"` // "10:00:00"
	Label       string `json:"label"`     // "10:00 AM"
	IsAvailable bool   `json:"isAvailable"`
	IsPast      bool   `json:"isPast"`
}

// WindowDTO рабочее окно врача
type WindowDTO struct {
	OfficeID   int64  `json:"officeId"`
	OfficeName string `json:"officeName"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// ToUseCaseRequest создает запрос use case
func ToUseCaseRequest(identity domain.Identity, practitionerID int64, date string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		Identity:       identity,
		PractitionerID: practitionerID,
		Date:           date,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]SlotDTO, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotDTO{
			StartTime:   slot.StartTime.String(),
			Label:       slot.Label,
			IsAvailable: slot.IsAvailable,
			IsPast:      slot.IsPast,
		}
	}

	windows := make([]WindowDTO, len(resp.WorkWindows))
	for i, w := range resp.WorkWindows {
		windows[i] = WindowDTO{
			OfficeID:   w.OfficeID,
			OfficeName: w.OfficeName,
			StartTime:  w.StartTime.String(),
			EndTime:    w.EndTime.String(),
		}
	}

	booked := make([]string, len(resp.BookedSlots))
	for i, ts := range resp.BookedSlots {
		booked[i] = ts.String()
	}

	return &AvailabilityResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		PractitionerID: resp.PractitionerID,
		Scheduled:      resp.Scheduled,
		Slots:          slots,
		WorkWindows:    windows,
		BookedSlots:    booked,
	}
}
