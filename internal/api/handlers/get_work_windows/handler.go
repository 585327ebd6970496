package get_work_windows

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
	msgPractitionerNotFound  = "врач не найден"
)

type Handler struct {
	useCase WorkWindowsUseCase
	logger  Logger
}

func NewHandler(useCase WorkWindowsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/work-windows?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := strconv.ParseInt(mux.Vars(r)["practitionerId"], 10, 64)
	if err != nil || practitionerID <= 0 {
		h.logger.Warn("GET /practitioners/{id}/work-windows - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /practitioners/{id}/work-windows - Missing date: practitioner_id=%d", practitionerID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())

	windows, err := h.useCase.GetWorkWindows(r.Context(), &getAvailableSlots.Request{
		Identity:       identity,
		PractitionerID: practitionerID,
		Date:           dateStr,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /practitioners/{id}/work-windows - Invalid input: practitioner_id=%d, date=%s", practitionerID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrPractitionerNotFound):
			h.logger.Warn("GET /practitioners/{id}/work-windows - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		default:
			h.logger.Error("GET /practitioners/{id}/work-windows - Failed to resolve windows: practitioner_id=%d, date=%s, error=%v",
				practitionerID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/work-windows - Windows resolved: practitioner_id=%d, date=%s, count=%d",
		practitionerID, dateStr, len(windows))
	handlers.RespondJSON(w, http.StatusOK, FromDomainWorkWindows(practitionerID, dateStr, windows))
}
