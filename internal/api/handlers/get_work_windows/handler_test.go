package get_work_windows

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClinicScheduling/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

type fakeUseCase struct {
	windows []domain.WorkWindow
	err     error
}

func (f *fakeUseCase) GetWorkWindows(context.Context, *getAvailableSlots.Request) ([]domain.WorkWindow, error) {
	return f.windows, f.err
}

func serve(uc *fakeUseCase, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/practitioners/{practitionerId}/work-windows", NewHandler(uc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle_ReturnsWindows(t *testing.T) {
	uc := &fakeUseCase{windows: []domain.WorkWindow{
		{OfficeID: 3, OfficeName: "Main", StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("12:00")},
		{OfficeID: 5, OfficeName: "North", StartTime: types.MustTimeString("13:00"), EndTime: types.MustTimeString("17:00")},
	}}

	rec := serve(uc, "/practitioners/42/work-windows?date=2025-01-06")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{
		"date":"2025-01-06","practitionerId":42,"scheduled":true,
		"workWindows":[
			{"officeId":3,"officeName":"Main","startTime":"08:00:00","endTime":"12:00:00"},
			{"officeId":5,"officeName":"North","startTime":"13:00:00","endTime":"17:00:00"}
		]}}`, rec.Body.String())
}

func TestHandle_NoWindows(t *testing.T) {
	rec := serve(&fakeUseCase{}, "/practitioners/42/work-windows?date=2025-01-11")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"scheduled":false`)
	assert.Contains(t, rec.Body.String(), `"workWindows":[]`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "/practitioners/x/work-windows?date=2025-01-06").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "/practitioners/42/work-windows").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{err: getAvailableSlots.ErrInvalidDate}, "/practitioners/42/work-windows?date=2025-13-01").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeUseCase{err: getAvailableSlots.ErrPractitionerNotFound}, "/practitioners/42/work-windows?date=2025-01-06").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeUseCase{err: getAvailableSlots.ErrInternal}, "/practitioners/42/work-windows?date=2025-01-06").Code)
}
