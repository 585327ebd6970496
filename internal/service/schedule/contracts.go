package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
)

// ScheduleRepository источник строк повторяющегося расписания
type ScheduleRepository interface {
	GetEntries(ctx context.Context, practitionerID int64, dayOfWeek string, date time.Time) ([]*domain.ScheduleEntry, error)
}

// PractitionerRepository справочник врачей
type PractitionerRepository interface {
	GetPractitioner(ctx context.Context, id int64) (*domain.Practitioner, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
