package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicScheduling/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ClinicScheduling/internal/service/bookings/models"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/ptr"
)

// Service сервис чтения записей и смены их статуса
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает запись по ID.
// Пациент видит только свои записи, врач - записи к себе, регистратура и администратор - любые.
func (s *Service) GetByID(ctx context.Context, id int64, identity domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d role=%s", id, identity.UserID, identity.Role)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !canView(identity, booking) {
		s.logger.Warn("GetByID: access denied for user=%d role=%s to booking id=%d", identity.UserID, identity.Role, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetPatientBookings получает записи пациента, опционально по статусу
func (s *Service) GetPatientBookings(ctx context.Context, req *models.GetPatientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPatientBookings: fetching bookings for patient=%d, status=%q", req.PatientID, ptr.Deref(req.Status, ""))

	if !req.Identity.CanActForPatient(req.PatientID) {
		s.logger.Warn("GetPatientBookings: access denied for user=%d role=%s to patient=%d",
			req.Identity.UserID, req.Identity.Role, req.PatientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPatientBookings: invalid status=%s for patient=%d", *req.Status, req.PatientID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByPatientID(ctx, req.PatientID, domainStatus)
	if err != nil {
		s.logger.Error("GetPatientBookings: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientBookings: successfully fetched %d bookings for patient=%d", len(bookings), req.PatientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPractitionerBookings получает записи врача с фильтрацией по дате и статусу.
// Доступно самому врачу, регистратуре и администратору.
func (s *Service) GetPractitionerBookings(ctx context.Context, req *models.GetPractitionerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPractitionerBookings: fetching bookings for practitioner=%d, date=%q, status=%q, includeCancelled=%t",
		req.PractitionerID, ptr.Deref(req.Date, ""), ptr.Deref(req.Status, ""), req.IncludeCancelled)

	if !req.Identity.CanManagePractitioner(req.PractitionerID) {
		s.logger.Warn("GetPractitionerBookings: access denied for user=%d role=%s to practitioner=%d",
			req.Identity.UserID, req.Identity.Role, req.PractitionerID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPractitionerBookings: invalid filter for practitioner=%d: %v", req.PractitionerID, err)
		if errors.Is(err, models.ErrInvalidStatus) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByPractitionerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPractitionerBookings: repository error for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: GetPractitionerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPractitionerBookings: successfully fetched %d bookings for practitioner=%d", len(bookings), req.PractitionerID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит запись в новый статус по таблице переходов.
// Менять статус может врач записи, регистратура или администратор.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d role=%s",
		bookingID, req.Status, req.Identity.UserID, req.Identity.Role)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if !req.Identity.CanManagePractitioner(booking.PractitionerID) {
			s.logger.Warn("UpdateStatus: access denied for user=%d role=%s to booking id=%d",
				req.Identity.UserID, req.Identity.Role, bookingID)
			return ErrAccessDenied
		}

		if err := s.transition(txCtx, "UpdateStatus", booking, newStatus, nil); err != nil {
			return err
		}

		updated, err = s.getBooking(txCtx, "UpdateStatus", bookingID)
		return err
	})
	if err != nil {
		return nil, s.classify(err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет запись с причиной. Отмененная запись освобождает слот.
// Пациент отменяет только свои записи, врач - записи к себе.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d role=%s", bookingID, req.Identity.UserID, req.Identity.Role)

	if req.CancellationReason != nil && len([]rune(*req.CancellationReason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if !canView(req.Identity, booking) {
			s.logger.Warn("Cancel: access denied for user=%d role=%s to booking id=%d",
				req.Identity.UserID, req.Identity.Role, bookingID)
			return ErrAccessDenied
		}

		if err := s.transition(txCtx, "Cancel", booking, domain.StatusCancelled, req.CancellationReason); err != nil {
			return err
		}

		updated, err = s.getBooking(txCtx, "Cancel", bookingID)
		return err
	})
	if err != nil {
		return nil, s.classify(err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(updated), nil
}

// Вспомогательные методы

func (s *Service) transition(ctx context.Context, op string, booking *domain.Booking, to domain.BookingStatus, reason *string) error {
	if booking.Status.IsTerminal() {
		s.logger.Warn("%s: booking id=%d is in terminal status %s", op, booking.ID, booking.Status)
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, booking.Status)
	}
	if !booking.Status.CanTransitionTo(to) {
		s.logger.Warn("%s: transition %s -> %s is not allowed for booking id=%d, allowed: %v",
			op, booking.Status, to, booking.ID, booking.Status.AllowedTransitions())
		return fmt.Errorf("%w: %s -> %s, allowed: %v", ErrInvalidTransition, booking.Status, to, booking.Status.AllowedTransitions())
	}

	var err error
	if to == domain.StatusCancelled {
		err = s.bookingRepo.Cancel(ctx, booking.ID, booking.Status, reason)
	} else {
		err = s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status, to)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusChanged):
		s.logger.Warn("%s: booking id=%d status changed concurrently", op, booking.ID)
		return ErrConcurrentUpdate
	default:
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// classify приводит ошибки транзакции к ошибкам сервиса
func (s *Service) classify(err error) error {
	for _, known := range []error{
		ErrBookingNotFound,
		ErrAccessDenied,
		ErrInvalidTransition,
		ErrConcurrentUpdate,
		ErrInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	s.logger.Error("bookings: transaction error: %v", err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// canView доступ к конкретной записи: участник записи или регистратура/администратор
func canView(identity domain.Identity, booking *domain.Booking) bool {
	switch {
	case identity.IsStaff():
		return true
	case identity.Role == domain.RolePatient:
		return identity.UserID == booking.PatientID
	case identity.IsPractitioner():
		return identity.UserID == booking.PractitionerID
	default:
		return false
	}
}
