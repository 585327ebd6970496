package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/internal/infra/storage/directory"
)

// Resolver определяет рабочие окна врача на конкретную дату
type Resolver struct {
	scheduleRepo     ScheduleRepository
	practitionerRepo PractitionerRepository
	logger           Logger
}

// NewResolver создает новый экземпляр резолвера
func NewResolver(scheduleRepo ScheduleRepository, practitionerRepo PractitionerRepository, logger Logger) *Resolver {
	return &Resolver{
		scheduleRepo:     scheduleRepo,
		practitionerRepo: practitionerRepo,
		logger:           logger,
	}
}

// Resolve возвращает рабочие окна врача на дату, отсортированные по названию кабинета.
// Пустой результат - врач не работает в этот день, это не ошибка.
// Строки с конкретной датой переопределяют расписание по дню недели.
func (r *Resolver) Resolve(ctx context.Context, practitionerID int64, date time.Time) ([]domain.WorkWindow, error) {
	if practitionerID <= 0 {
		return nil, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := r.practitionerRepo.GetPractitioner(ctx, practitionerID); err != nil {
		if errors.Is(err, directory.ErrPractitionerNotFound) {
			r.logger.Warn("Resolve: practitioner id=%d not found", practitionerID)
			return nil, ErrPractitionerNotFound
		}
		r.logger.Error("Resolve: failed to get practitioner id=%d: %v", practitionerID, err)
		return nil, fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}

	dayOfWeek := date.Weekday().String()

	entries, err := r.scheduleRepo.GetEntries(ctx, practitionerID, dayOfWeek, date)
	if err != nil {
		r.logger.Error("Resolve: failed to get schedule for practitioner id=%d, date=%s: %v",
			practitionerID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	windows := make([]domain.WorkWindow, 0, len(entries))
	for _, entry := range selectEntries(entries, dayOfWeek, date) {
		if !entry.StartTime.IsBefore(entry.EndTime) {
			r.logger.Warn("Resolve: skipping schedule entry id=%d with start=%s >= end=%s",
				entry.ID, entry.StartTime, entry.EndTime)
			continue
		}
		windows = append(windows, domain.WorkWindow{
			PractitionerID: practitionerID,
			Date:           dateOnly(date),
			OfficeID:       entry.OfficeID,
			OfficeName:     entry.OfficeName,
			StartTime:      entry.StartTime,
			EndTime:        entry.EndTime,
		})
	}

	sort.SliceStable(windows, func(i, j int) bool {
		if windows[i].OfficeName != windows[j].OfficeName {
			return windows[i].OfficeName < windows[j].OfficeName
		}
		return windows[i].StartTime.IsBefore(windows[j].StartTime)
	})

	r.logger.Debug("Resolve: practitioner id=%d, date=%s: %d windows from %d schedule entries",
		practitionerID, date.Format(domain.DateFormat), len(windows), len(entries))

	return windows, nil
}

// selectEntries оставляет строки с конкретной датой, если они есть, иначе строки по дню недели
func selectEntries(entries []*domain.ScheduleEntry, dayOfWeek string, date time.Time) []*domain.ScheduleEntry {
	explicit := make([]*domain.ScheduleEntry, 0)
	recurring := make([]*domain.ScheduleEntry, 0)

	for _, entry := range entries {
		switch {
		case entry.MatchesDate(date):
			explicit = append(explicit, entry)
		case entry.DayOfWeek != nil && *entry.DayOfWeek == dayOfWeek:
			recurring = append(recurring, entry)
		}
	}

	if len(explicit) > 0 {
		return explicit
	}
	return recurring
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
