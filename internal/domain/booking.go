package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

// BookingStatus статус записи на приём
type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusWaiting    BookingStatus = "waiting"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// allowedTransitions допустимые переходы статусов. Терминальные статусы переходов не имеют.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusScheduled:  {StatusWaiting, StatusInProgress, StatusCancelled, StatusNoShow},
	StatusWaiting:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// ParseBookingStatus возвращает статус, если строка входит в закрытый набор
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	_, ok := allowedTransitions[status]
	return status, ok
}

// IsValid входит ли статус в закрытый набор
func (s BookingStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal из статуса нет переходов
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(allowedTransitions[s]) == 0
}

// CanTransitionTo разрешен ли переход s -> next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedTransitions список статусов, в которые можно перейти из s
func (s BookingStatus) AllowedTransitions() []BookingStatus {
	next := allowedTransitions[s]
	out := make([]BookingStatus, len(next))
	copy(out, next)
	return out
}

// Booking запись пациента на приём
type Booking struct {
	ID             int64
	PractitionerID int64
	PatientID      int64
	OfficeID       int64
	Date           time.Time
	StartTime      types.TimeString
	Reason         *string
	Status         BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive запись занимает слот (не отменена)
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// PractitionerBookingsFilter фильтр для получения записей врача
type PractitionerBookingsFilter struct {
	PractitionerID   int64          // Обязательный параметр
	Date             *time.Time     // Конкретная дата (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные записи
}
