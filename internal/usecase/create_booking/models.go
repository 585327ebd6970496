package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Identity       domain.Identity // Вызывающий пользователь
	PractitionerID int64           // ID врача
	PatientID      int64           // ID пациента
	Date           string          // Дата в формате YYYY-MM-DD
	StartTime      string          // Время слота, HH:MM или HH:MM:SS
	Reason         *string         // Причина обращения (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID             int64
	PractitionerID int64
	PatientID      int64
	OfficeID       int64
	Date           time.Time
	StartTime      types.TimeString
	Reason         *string
	Status         domain.BookingStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
