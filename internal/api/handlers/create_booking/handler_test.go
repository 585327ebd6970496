package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduling/internal/domain"
	createBooking "github.com/m04kA/SMC-ClinicScheduling/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduling/pkg/types"
)

type fakeUseCase struct {
	resp    *createBooking.Response
	err     error
	lastReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

var receptionist = domain.Identity{UserID: 1, Role: domain.RoleReceptionist}

const validBody = `{"practitionerId":42,"patientId":7,"date":"2025-01-06","startTime":"10:00","reason":"checkup"}`

func post(uc *fakeUseCase, body string, identity *domain.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *identity))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	created := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	reason := "checkup"
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:             11,
		PractitionerID: 42,
		PatientID:      7,
		OfficeID:       3,
		Date:           time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		StartTime:      types.MustTimeString("10:00"),
		Reason:         &reason,
		Status:         domain.StatusScheduled,
		CreatedAt:      created,
		UpdatedAt:      created,
	}}

	rec := post(uc, validBody, &receptionist)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, receptionist, uc.lastReq.Identity)
	assert.Equal(t, "10:00", uc.lastReq.StartTime)
	assert.JSONEq(t, `{"success":true,"data":{
		"id":11,"practitionerId":42,"patientId":7,"officeId":3,
		"date":"2025-01-06","startTime":"10:00:00","reason":"checkup","status":"scheduled",
		"createdAt":"2025-01-02T09:00:00Z","updatedAt":"2025-01-02T09:00:00Z"}}`, rec.Body.String())
}

func TestHandle_RequiresIdentity(t *testing.T) {
	uc := &fakeUseCase{}
	rec := post(uc, validBody, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandle_InvalidBody(t *testing.T) {
	for _, body := range []string{
		``,
		`{"practitionerId":`,
		`{"practitionerId":0,"patientId":7,"date":"2025-01-06","startTime":"10:00"}`,
		`{"practitionerId":42,"patientId":7,"startTime":"10:00"}`,
		`{"practitionerId":42,"patientId":7,"date":"2025-01-06","startTime":"10:00","reason":"` + strings.Repeat("a", 501) + `"}`,
	} {
		uc := &fakeUseCase{}
		rec := post(uc, body, &receptionist)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Nil(t, uc.lastReq)
	}
}

func TestHandle_OutsideWorkWindowIncludesWindows(t *testing.T) {
	uc := &fakeUseCase{err: &createBooking.SchedulingError{
		StartTime: types.MustTimeString("14:00"),
		Windows: []domain.WorkWindow{
			{OfficeID: 3, OfficeName: "Main", StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("12:00")},
		},
	}}

	rec := post(uc, validBody, &receptionist)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Success bool                      `json:"success"`
		Data    OutsideWorkWindowResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "14:00:00", body.Data.StartTime)
	assert.Equal(t, []WorkWindowDTO{{OfficeID: 3, OfficeName: "Main", StartTime: "08:00:00", EndTime: "12:00:00"}}, body.Data.WorkWindows)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: fmt.Errorf("%w: duplicate", createBooking.ErrSlotAlreadyBooked), wantStatus: http.StatusConflict},
		{err: createBooking.ErrSlotBeingBooked, wantStatus: http.StatusConflict},
		{err: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{err: createBooking.ErrSlotInPast, wantStatus: http.StatusBadRequest},
		{err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: createBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{err: createBooking.ErrPractitionerNotFound, wantStatus: http.StatusNotFound},
		{err: createBooking.ErrPatientNotFound, wantStatus: http.StatusNotFound},
		{err: fmt.Errorf("%w: pq: connection refused", createBooking.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := post(&fakeUseCase{err: tt.err}, validBody, &receptionist)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}
