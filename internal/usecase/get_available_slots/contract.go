package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
)

// ScheduleResolver определяет рабочие окна врача на дату
type ScheduleResolver interface {
	Resolve(ctx context.Context, practitionerID int64, date time.Time) ([]domain.WorkWindow, error)
}

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	// GetActiveByPractitionerAndDate неотмененные записи врача на дату
	GetActiveByPractitionerAndDate(ctx context.Context, practitionerID int64, date time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
