package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByPractitionerAndDate(ctx context.Context, practitionerID int64, date time.Time) ([]*domain.Booking, error)
}

// PatientRepository справочник пациентов
type PatientRepository interface {
	GetPatient(ctx context.Context, id int64) (*domain.Patient, error)
}

// ScheduleResolver определяет рабочие окна врача на дату
type ScheduleResolver interface {
	Resolve(ctx context.Context, practitionerID int64, date time.Time) ([]domain.WorkWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotLocker блокировка слота на время проверки и вставки
type SlotLocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// MetricsRecorder счетчик исходов создания записи
type MetricsRecorder interface {
	RecordBookingOutcome(outcome string)
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
