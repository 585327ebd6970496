package get_practitioner_bookings

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
	lastReq *models.GetPractitionerBookingsRequest
}

func (f *fakeService) GetPractitionerBookings(_ context.Context, req *models.GetPractitionerBookingsRequest) (*models.BookingListResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}, nil
}

var doctor = domain.Identity{UserID: 42, Role: domain.RoleDoctor}

func get(svc *fakeService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/practitioners/{practitionerId}/bookings", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), doctor))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := &fakeService{}
	rec := get(svc, "/practitioners/42/bookings?date=2025-01-06&status=scheduled&includeCancelled=true")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastReq)
	assert.Equal(t, int64(42), svc.lastReq.PractitionerID)
	assert.Equal(t, doctor, svc.lastReq.Identity)
	require.NotNil(t, svc.lastReq.Date)
	assert.Equal(t, "2025-01-06", *svc.lastReq.Date)
	require.NotNil(t, svc.lastReq.Status)
	assert.Equal(t, "scheduled", *svc.lastReq.Status)
	assert.True(t, svc.lastReq.IncludeCancelled)
}

func TestHandle_DefaultsOmitFilters(t *testing.T) {
	svc := &fakeService{}
	rec := get(svc, "/practitioners/42/bookings")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.lastReq.Date)
	assert.Nil(t, svc.lastReq.Status)
	assert.False(t, svc.lastReq.IncludeCancelled)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "/practitioners/abc/bookings").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "/practitioners/42/bookings?includeCancelled=maybe").Code)
	assert.Equal(t, http.StatusForbidden, get(&fakeService{err: bookings.ErrAccessDenied}, "/practitioners/42/bookings").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{err: bookings.ErrInvalidStatus}, "/practitioners/42/bookings?status=x").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{err: bookings.ErrInvalidInput}, "/practitioners/42/bookings?date=x").Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: bookings.ErrInternal}, "/practitioners/42/bookings").Code)
}
