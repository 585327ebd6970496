package cancel_booking

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
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
	lastID  int64
	lastReq *models.CancelBookingRequest
}

func (f *fakeService) Cancel(_ context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	f.lastID = id
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: "cancelled", CancellationReason: req.CancellationReason}, nil
}

var patient = domain.Identity{UserID: 7, Role: domain.RolePatient}

func patch(svc *fakeService, path string, body io.Reader) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPatch, path, body)
	req = req.WithContext(middleware.WithIdentity(req.Context(), patient))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_WithReason(t *testing.T) {
	svc := &fakeService{}
	rec := patch(svc, "/bookings/5/cancel", strings.NewReader(`{"cancellationReason":"заболел"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.lastID)
	require.NotNil(t, svc.lastReq.CancellationReason)
	assert.Equal(t, "заболел", *svc.lastReq.CancellationReason)
	assert.Equal(t, patient, svc.lastReq.Identity)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_EmptyBodyIsAllowed(t *testing.T) {
	svc := &fakeService{}
	rec := patch(svc, "/bookings/5/cancel", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.lastReq.CancellationReason)
}

func TestHandle_BadRequests(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, patch(&fakeService{}, "/bookings/x/cancel", nil).Code)
	assert.Equal(t, http.StatusBadRequest, patch(&fakeService{}, "/bookings/5/cancel", strings.NewReader(`{"reason":1}`)).Code)
	long := `{"cancellationReason":"` + strings.Repeat("a", 501) + `"}`
	assert.Equal(t, http.StatusBadRequest, patch(&fakeService{}, "/bookings/5/cancel", strings.NewReader(long)).Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{err: fmt.Errorf("%w: completed -> cancelled", bookings.ErrInvalidTransition), wantStatus: http.StatusConflict},
		{err: bookings.ErrConcurrentUpdate, wantStatus: http.StatusConflict},
		{err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, patch(&fakeService{err: tt.err}, "/bookings/5/cancel", nil).Code)
		})
	}
}
