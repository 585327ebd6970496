package get_patient_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduling/internal/service/bookings"
	"github.com/m04kA/SMC-ClinicScheduling/internal/service/bookings/models"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/logger"
)

type fakeService struct {
	err     error
	lastReq *models.GetPatientBookingsRequest
}

func (f *fakeService) GetPatientBookings(_ context.Context, req *models.GetPatientBookingsRequest) (*models.BookingListResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
}

var patient = domain.Identity{UserID: 7, Role: domain.RolePatient}

func get(svc *fakeService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/patients/{patientId}/bookings", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), patient))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := get(svc, "/patients/7/bookings?status=scheduled")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
	assert.Equal(t, int64(7), svc.lastReq.PatientID)
	require.NotNil(t, svc.lastReq.Status)
	assert.Equal(t, "scheduled", *svc.lastReq.Status)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "/patients/-1/bookings").Code)
	assert.Equal(t, http.StatusForbidden, get(&fakeService{err: bookings.ErrAccessDenied}, "/patients/8/bookings").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{err: bookings.ErrInvalidStatus}, "/patients/7/bookings?status=x").Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: bookings.ErrInternal}, "/patients/7/bookings").Code)
}
