package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/psqlbuilder"
)

// Repository справочник врачей и пациентов (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPractitioner получает врача по ID
func (r *Repository) GetPractitioner(ctx context.Context, id int64) (*domain.Practitioner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildPractitionerSelect(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPractitioner - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Practitioner
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Kind,
		&p.Specialty,
		&p.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPractitionerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPractitioner - scan practitioner: %v", ErrScanRow, err)
	}

	return &p, nil
}

// GetPatient получает пациента по ID
func (r *Repository) GetPatient(ctx context.Context, id int64) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildPatientSelect(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPatient - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Patient
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.DateOfBirth,
		&p.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPatient - scan patient: %v", ErrScanRow, err)
	}

	return &p, nil
}

func buildPractitionerSelect(id int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "first_name", "last_name", "kind", "specialty", "is_active").
		From("practitioners").
		Where(squirrel.Eq{"id": id})
}

func buildPatientSelect(id int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "first_name", "last_name", "date_of_birth", "phone").
		From("patients").
		Where(squirrel.Eq{"id": id})
}
