package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduling/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-ClinicScheduling/internal/usecase/get_available_slots"
)

const (
	msgInvalidPractitionerID = "некорректный ID врача"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams         = "некорректные параметры запроса"
	msgPractitionerNotFound  = "врач не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/availability?date=YYYY-MM-DD
// и GET /api/v1/availability?practitioner_id=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerIDStr, ok := mux.Vars(r)["practitionerId"]
	if !ok {
		practitionerIDStr = r.URL.Query().Get("practitioner_id")
	}

	practitionerID, err := strconv.ParseInt(practitionerIDStr, 10, 64)
	if err != nil || practitionerID <= 0 {
		h.logger.Warn("GET /availability - Invalid practitioner ID: %q", practitionerIDStr)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date: practitioner_id=%d", practitionerID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Identity необязательна: расчет доступности не зависит от вызывающего
	identity, _ := middleware.GetIdentity(r.Context())

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(identity, practitionerID, dateStr))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date: practitioner_id=%d, date=%s", practitionerID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrPractitionerNotFound):
			h.logger.Warn("GET /availability - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		default:
			h.logger.Error("GET /availability - Failed to get availability: practitioner_id=%d, date=%s, error=%v",
				practitionerID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability calculated: practitioner_id=%d, date=%s, scheduled=%t, slots_count=%d",
		practitionerID, dateStr, result.Scheduled, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
