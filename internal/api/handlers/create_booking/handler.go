package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduling/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ClinicScheduling/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidInput         = "некорректные данные записи: время должно быть слотом расписания, причина не длиннее 500 символов"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotInPast           = "нельзя записаться на прошедшее время"
	msgForbidden            = "пациент может записывать только себя"
	msgPractitionerNotFound = "врач не найден"
	msgPatientNotFound      = "пациент не найден"
	msgOutsideWorkWindow    = "врач не принимает в выбранное время"
	msgSlotAlreadyBooked    = "выбранное время уже занято"
	msgSlotBeingBooked      = "выбранное время сейчас бронируется, попробуйте еще раз"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity))
	if err != nil {
		var schedErr *createBooking.SchedulingError
		switch {
		case errors.As(err, &schedErr):
			h.logger.Warn("POST /bookings - Outside work windows: practitioner_id=%d, date=%s, start_time=%s",
				req.PractitionerID, req.Date, req.StartTime)
			handlers.RespondErrorWithData(w, http.StatusUnprocessableEntity, msgOutsideWorkWindow, FromSchedulingError(schedErr))

		case errors.Is(err, createBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: practitioner_id=%d, date=%s, start_time=%s",
				req.PractitionerID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createBooking.ErrSlotBeingBooked):
			h.logger.Warn("POST /bookings - Slot is locked: practitioner_id=%d, date=%s, start_time=%s",
				req.PractitionerID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotBeingBooked)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: %s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in the past: date=%s, start_time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: user_id=%d, role=%s, patient_id=%d",
				identity.UserID, identity.Role, req.PatientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrPractitionerNotFound):
			h.logger.Warn("POST /bookings - Practitioner not found: practitioner_id=%d", req.PractitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, createBooking.ErrPatientNotFound):
			h.logger.Warn("POST /bookings - Patient not found: patient_id=%d", req.PatientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: practitioner_id=%d, patient_id=%d, error=%v",
				req.PractitionerID, req.PatientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, practitioner_id=%d, patient_id=%d",
		result.ID, result.PractitionerID, result.PatientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
