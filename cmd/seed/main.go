package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicScheduling/internal/config"
	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/ptr"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/txmanager"
)

var (
	weekdays    = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	specialties = []string{"General Practice", "Cardiology", "Dermatology", "Pediatrics", "Neurology", "ENT"}
	officeNames = []string{"Main Building", "North Wing", "South Clinic"}
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	practitioners := flag.Int("practitioners", 10, "number of practitioners")
	patients := flag.Int("patients", 200, "number of patients")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	wrapped := dbmetrics.Wrap(db)
	s := &seeder{db: wrapped}

	err = txmanager.NewTransactionManager(wrapped).Do(ctx, func(ctx context.Context) error {
		offices, err := s.seedOffices(ctx)
		if err != nil {
			return fmt.Errorf("seed offices: %w", err)
		}
		if err := s.seedPractitioners(ctx, *practitioners, offices); err != nil {
			return fmt.Errorf("seed practitioners: %w", err)
		}
		if err := s.seedPatients(ctx, *patients); err != nil {
			return fmt.Errorf("seed patients: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Fatal("Seed failed: %v", err)
	}

	log.Info("Seed complete: offices=%d, practitioners=%d, patients=%d", len(officeNames), *practitioners, *patients)
}

type seeder struct {
	db dbmetrics.DBExecutor
}

func (s *seeder) insertReturningID(ctx context.Context, table string, columns []string, values ...interface{}) (int64, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := dbmetrics.GetExecutor(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *seeder) seedOffices(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(officeNames))
	for _, name := range officeNames {
		address := fmt.Sprintf("%s, %s", gofakeit.Street(), gofakeit.City())
		id, err := s.insertReturningID(ctx, "offices", []string{"name", "address"}, name, address)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// seedPractitioners создает врачей с утренним и дневным окном по будням в разных кабинетах
// и разовой сменой в субботу через explicit_dates
func (s *seeder) seedPractitioners(ctx context.Context, count int, offices []int64) error {
	nextSaturday := nextWeekday(time.Now(), time.Saturday).Format(domain.DateFormat)

	for i := 0; i < count; i++ {
		kind := domain.PractitionerDoctor
		if i%4 == 3 {
			kind = domain.PractitionerNurse
		}

		id, err := s.insertReturningID(ctx, "practitioners",
			[]string{"first_name", "last_name", "kind", "specialty", "is_active"},
			gofakeit.FirstName(), gofakeit.LastName(), string(kind), gofakeit.RandomString(specialties), true,
		)
		if err != nil {
			return err
		}

		morning := offices[i%len(offices)]
		afternoon := offices[(i+1)%len(offices)]
		for _, day := range weekdays {
			if _, err := s.insertSchedule(ctx, id, morning, ptr.Ptr(day), nil, "08:00:00", "12:00:00"); err != nil {
				return err
			}
			if _, err := s.insertSchedule(ctx, id, afternoon, ptr.Ptr(day), nil, "13:00:00", "17:00:00"); err != nil {
				return err
			}
		}

		if i%3 == 0 {
			if _, err := s.insertSchedule(ctx, id, morning, nil, []string{nextSaturday}, "09:00:00", "12:00:00"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *seeder) insertSchedule(
	ctx context.Context,
	practitionerID, officeID int64,
	dayOfWeek *string,
	explicitDates []string,
	start, end string,
) (int64, error) {
	var dates interface{}
	if len(explicitDates) > 0 {
		dates = pq.Array(explicitDates)
	}
	return s.insertReturningID(ctx, "work_schedules",
		[]string{"practitioner_id", "office_id", "day_of_week", "explicit_dates", "start_time", "end_time"},
		practitionerID, officeID, dayOfWeek, dates, start, end,
	)
}

func (s *seeder) seedPatients(ctx context.Context, count int) error {
	from := time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		birth := gofakeit.DateRange(from, to).Format(domain.DateFormat)
		_, err := s.insertReturningID(ctx, "patients",
			[]string{"first_name", "last_name", "date_of_birth", "phone"},
			gofakeit.FirstName(), gofakeit.LastName(), birth, gofakeit.Phone(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	diff := (int(day) - int(from.Weekday()) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return from.AddDate(0, 0, diff)
}
