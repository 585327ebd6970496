package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/psqlbuilder"
)

// Repository репозиторий повторяющегося расписания врачей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetEntries возвращает строки расписания врача, у которых совпадает день недели
// или список конкретных дат содержит date. Порядок - по названию кабинета.
func (r *Repository) GetEntries(ctx context.Context, practitionerID int64, dayOfWeek string, date time.Time) ([]*domain.ScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildEntriesSelect(practitionerID, dayOfWeek, date).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEntries - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEntries - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.ScheduleEntry, 0)
	for rows.Next() {
		var (
			entry     domain.ScheduleEntry
			dayOfWeek sql.NullString
			dates     pq.StringArray
		)

		if err := rows.Scan(
			&entry.ID,
			&entry.PractitionerID,
			&entry.OfficeID,
			&entry.OfficeName,
			&dayOfWeek,
			&dates,
			&entry.StartTime,
			&entry.EndTime,
		); err != nil {
			return nil, fmt.Errorf("%w: GetEntries - scan row: %v", ErrScanRow, err)
		}

		if dayOfWeek.Valid {
			entry.DayOfWeek = &dayOfWeek.String
		}

		entry.ExplicitDates, err = parseDates(dates)
		if err != nil {
			return nil, fmt.Errorf("%w: GetEntries - parse explicit dates of entry id=%d: %v", ErrScanRow, entry.ID, err)
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

func buildEntriesSelect(practitionerID int64, dayOfWeek string, date time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"ws.id",
		"ws.practitioner_id",
		"ws.office_id",
		"o.name",
		"ws.day_of_week",
		"ws.explicit_dates",
		"ws.start_time",
		"ws.end_time",
	).
		From("work_schedules ws").
		Join("offices o ON o.id = ws.office_id").
		Where(squirrel.Eq{"ws.practitioner_id": practitionerID}).
		Where(squirrel.Or{
			squirrel.Eq{"ws.day_of_week": dayOfWeek},
			squirrel.Expr("?::date = ANY(ws.explicit_dates)", date.Format(domain.DateFormat)),
		}).
		OrderBy("o.name ASC", "ws.start_time ASC")
}

func parseDates(raw pq.StringArray) ([]time.Time, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dates := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
