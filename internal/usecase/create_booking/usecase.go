package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicScheduling/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ClinicScheduling/internal/infra/storage/directory"
	"github.com/m04kA/SMC-ClinicScheduling/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/slotlock"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

// UseCase use case создания записи на приём
type UseCase struct {
	bookingRepo  BookingRepository
	patientRepo  PatientRepository
	resolver     ScheduleResolver
	txManager    TransactionManager
	locker       SlotLocker
	metrics      MetricsRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	patientRepo PatientRepository,
	resolver ScheduleResolver,
	txManager TransactionManager,
	locker SlotLocker,
	metrics MetricsRecorder,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if locker == nil {
		locker = slotlock.NewNoopLocker()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		patientRepo:  patientRepo,
		resolver:     resolver,
		txManager:    txManager,
		locker:       locker,
		metrics:      metrics,
		location:     loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости и вставка повторяются на момент записи, уникальный индекс хранилища
// остается окончательной защитой от двойной записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d role=%s, practitioner=%d, patient=%d, date=%s, time=%s",
		req.Identity.UserID, req.Identity.Role, req.PractitionerID, req.PatientID, req.Date, req.StartTime)

	result, err := uc.execute(ctx, req)
	uc.recordOutcome(err)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:             result.ID,
		PractitionerID: result.PractitionerID,
		PatientID:      result.PatientID,
		OfficeID:       result.OfficeID,
		Date:           result.Date,
		StartTime:      result.StartTime,
		Reason:         result.Reason,
		Status:         result.Status,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	date, startTime, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Пациент может записывать только себя
	if !req.Identity.CanActForPatient(req.PatientID) {
		uc.logger.Warn("CreateBooking: user=%d role=%s cannot book for patient=%d",
			req.Identity.UserID, req.Identity.Role, req.PatientID)
		return nil, ErrAccessDenied
	}

	// 3. Запись в прошлое запрещена
	now := uc.timeProvider.Now().In(uc.location)
	if startTime.On(date, uc.location).Before(now) {
		uc.logger.Warn("CreateBooking: slot %s %s is in the past", req.Date, startTime)
		return nil, fmt.Errorf("%w: %s %s", ErrSlotInPast, req.Date, startTime)
	}

	// 4. Пациент существует
	if _, err := uc.patientRepo.GetPatient(ctx, req.PatientID); err != nil {
		if errors.Is(err, directory.ErrPatientNotFound) {
			uc.logger.Warn("CreateBooking: patient id=%d not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 5. Блокировка слота + транзакция: повторная проверка и вставка
	lockKey := slotlock.Key(req.PractitionerID, date.Format(domain.DateFormat), startTime.String())
	insert := func(ctx context.Context) error {
		return uc.txManager.Do(ctx, func(txCtx context.Context) error {
			created, err := uc.checkAndInsert(txCtx, req, date, startTime)
			if err != nil {
				return err
			}
			result = created
			return nil
		})
	}

	err = uc.locker.WithLock(ctx, lockKey, insert)
	if errors.Is(err, slotlock.ErrLockUnavailable) {
		// Без Redis двойную запись все равно не пропустит уникальный индекс
		uc.logger.Warn("CreateBooking: slot lock unavailable, continuing without lock: %v", err)
		err = insert(ctx)
	}
	if err != nil {
		if errors.Is(err, slotlock.ErrLockNotAcquired) {
			uc.logger.Warn("CreateBooking: slot %s %s for practitioner=%d is locked by another request",
				req.Date, startTime, req.PractitionerID)
			return nil, ErrSlotBeingBooked
		}
		if isClassified(err) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return result, nil
}

func (uc *UseCase) checkAndInsert(ctx context.Context, req *Request, date time.Time, startTime types.TimeString) (*domain.Booking, error) {
	// 5.1. Рабочие окна на момент записи
	windows, err := uc.resolver.Resolve(ctx, req.PractitionerID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPractitionerNotFound):
			uc.logger.Warn("CreateBooking: practitioner id=%d not found", req.PractitionerID)
			return nil, ErrPractitionerNotFound
		case errors.Is(err, schedule.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("CreateBooking: failed to resolve work windows: %v", err)
			return nil, fmt.Errorf("%w: failed to resolve work windows: %v", ErrInternal, err)
		}
	}

	// 5.2. Неотмененные записи на дату
	bookings, err := uc.bookingRepo.GetActiveByPractitionerAndDate(ctx, req.PractitionerID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5.3. Слот уже занят
	if hasBookingAt(bookings, startTime) {
		uc.logger.Warn("CreateBooking: slot %s %s for practitioner=%d already booked",
			req.Date, startTime, req.PractitionerID)
		return nil, ErrSlotAlreadyBooked
	}

	// 5.4. Время вне рабочих окон
	window, ok := domain.FindContainingWindow(windows, startTime)
	if !ok {
		uc.logger.Warn("CreateBooking: time %s is outside %d work windows of practitioner=%d on %s",
			startTime, len(windows), req.PractitionerID, req.Date)
		return nil, &SchedulingError{StartTime: startTime, Windows: windows}
	}

	// 5.5. Вставка. Гонку между проверкой и вставкой ловит уникальный индекс.
	created, err := uc.bookingRepo.Create(ctx, &domain.Booking{
		PractitionerID: req.PractitionerID,
		PatientID:      req.PatientID,
		OfficeID:       window.OfficeID,
		Date:           date,
		StartTime:      startTime,
		Reason:         req.Reason,
		Status:         domain.StatusScheduled,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
			uc.logger.Warn("CreateBooking: unique constraint rejected slot %s %s for practitioner=%d",
				req.Date, startTime, req.PractitionerID)
			return nil, ErrSlotAlreadyBooked
		}
		uc.logger.Error("CreateBooking: failed to insert booking: %v", err)
		return nil, fmt.Errorf("%w: failed to insert booking: %v", ErrInternal, err)
	}

	return created, nil
}

func (uc *UseCase) recordOutcome(err error) {
	if uc.metrics == nil {
		return
	}
	switch {
	case err == nil:
		uc.metrics.RecordBookingOutcome(domain.OutcomeCreated)
	case errors.Is(err, ErrSlotAlreadyBooked), errors.Is(err, ErrSlotBeingBooked):
		uc.metrics.RecordBookingOutcome(domain.OutcomeConflict)
	case errors.Is(err, ErrInternal):
		uc.metrics.RecordBookingOutcome(domain.OutcomeError)
	default:
		uc.metrics.RecordBookingOutcome(domain.OutcomeRejected)
	}
}

// isClassified ошибка уже приведена к ошибкам use case
func isClassified(err error) bool {
	for _, target := range []error{
		ErrPractitionerNotFound,
		ErrSlotAlreadyBooked,
		ErrOutsideWorkWindow,
		ErrInvalidInput,
		ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
