package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicScheduling/internal/service/slots"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

// UseCase use case расчета доступных слотов врача на дату
type UseCase struct {
	resolver     ScheduleResolver
	bookingRepo  BookingRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. loc - часовой пояс клиники.
func NewUseCase(
	resolver ScheduleResolver,
	bookingRepo BookingRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		resolver:     resolver,
		bookingRepo:  bookingRepo,
		location:     loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Прошедшая дата не ошибка: все слоты возвращаются прошедшими и недоступными.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d role=%s, practitioner=%d, date=%s",
		req.Identity.UserID, req.Identity.Role, req.PractitionerID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Рабочие окна на дату
	windows, err := uc.resolveWindows(ctx, req.PractitionerID, date)
	if err != nil {
		return nil, err
	}

	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: practitioner=%d is not scheduled on %s", req.PractitionerID, req.Date)
		return &Response{
			Date:           date,
			PractitionerID: req.PractitionerID,
			Scheduled:      false,
			Slots:          []domain.Slot{},
			WorkWindows:    []domain.WorkWindow{},
			BookedSlots:    []types.TimeString{},
		}, nil
	}

	// 3. Неотмененные записи на эту дату
	bookings, err := uc.bookingRepo.GetActiveByPractitionerAndDate(ctx, req.PractitionerID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for practitioner=%d, date=%s: %v",
			req.PractitionerID, req.Date, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Сетка слотов
	generated := slots.Generate(windows, bookings, date, uc.timeProvider.Now().In(uc.location))

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d booked) for practitioner=%d, date=%s",
		len(generated.Slots), len(generated.BookedSlots), req.PractitionerID, req.Date)

	return &Response{
		Date:           date,
		PractitionerID: req.PractitionerID,
		Scheduled:      true,
		Slots:          generated.Slots,
		WorkWindows:    windows,
		BookedSlots:    generated.BookedSlots,
	}, nil
}

// GetWorkWindows возвращает только рабочие окна врача на дату
func (uc *UseCase) GetWorkWindows(ctx context.Context, req *Request) ([]domain.WorkWindow, error) {
	date, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("GetWorkWindows: validation failed: %v", err)
		return nil, err
	}
	return uc.resolveWindows(ctx, req.PractitionerID, date)
}

func (uc *UseCase) resolveWindows(ctx context.Context, practitionerID int64, date time.Time) ([]domain.WorkWindow, error) {
	windows, err := uc.resolver.Resolve(ctx, practitionerID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPractitionerNotFound):
			return nil, ErrPractitionerNotFound
		case errors.Is(err, schedule.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("GetAvailableSlots: failed to resolve work windows for practitioner=%d: %v", practitionerID, err)
			return nil, fmt.Errorf("%w: failed to resolve work windows: %v", ErrInternal, err)
		}
	}
	return windows, nil
}
