package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medassist/internal/delivery/dto"
	"medassist/internal/delivery/http/middleware"
	"medassist/internal/usecase"
	"medassist/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatientUsecase struct {
	err   error
	calls int
}

func (f *fakePatientUsecase) result() (*dto.PatientResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PatientResponse{ID: uuid.New(), FullName: "Ana Lima"}, nil
}

func (f *fakePatientUsecase) CreatePatient(_ context.Context, _ uuid.UUID, _ *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	return f.result()
}

func (f *fakePatientUsecase) GetPatient(_ context.Context, _, _ uuid.UUID) (*dto.PatientResponse, error) {
	return f.result()
}

func (f *fakePatientUsecase) GetAllPatients(_ context.Context, _ uuid.UUID) (*dto.PatientListResponse, error) {
	f.calls++
	return &dto.PatientListResponse{}, f.err
}

func (f *fakePatientUsecase) UpdatePatient(_ context.Context, _, _ uuid.UUID, _ *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	return f.result()
}

func (f *fakePatientUsecase) DeletePatient(_ context.Context, _, _ uuid.UUID) error {
	f.calls++
	return f.err
}

// doctorRequest builds a request as it leaves the auth middleware, with the
// route variables mux would have set
func doctorRequest(method, target, body string, vars map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
	return req.WithContext(ctx)
}

func TestPatientHandler_StatusMapping(t *testing.T) {
	id := uuid.NewString()
	vars := map[string]string{"id": id}

	type call func(h *PatientHandler, w http.ResponseWriter)
	create := func(body string) call {
		return func(h *PatientHandler, w http.ResponseWriter) {
			h.CreatePatient(w, doctorRequest(http.MethodPost, "/api/v1/patients", body, nil))
		}
	}
	get := func(h *PatientHandler, w http.ResponseWriter) {
		h.GetPatient(w, doctorRequest(http.MethodGet, "/api/v1/patients/"+id, "", vars))
	}
	update := func(body string) call {
		return func(h *PatientHandler, w http.ResponseWriter) {
			h.UpdatePatient(w, doctorRequest(http.MethodPut, "/api/v1/patients/"+id, body, vars))
		}
	}
	remove := func(h *PatientHandler, w http.ResponseWriter) {
		h.DeletePatient(w, doctorRequest(http.MethodDelete, "/api/v1/patients/"+id, "", vars))
	}

	tests := []struct {
		name        string
		call        call
		err         error
		wantCode    int
		wantMessage string
	}{
		{name: "create", call: create(`{"full_name":"Ana Lima"}`), wantCode: http.StatusCreated, wantMessage: "Patient created successfully"},
		{name: "create with bad date", call: create(`{"full_name":"Ana Lima","date_of_birth":"1990-02-20"}`), err: usecase.ErrInvalidDateFormat, wantCode: http.StatusBadRequest, wantMessage: usecase.ErrInvalidDateFormat.Error()},
		{name: "create storage failure", call: create(`{"full_name":"Ana Lima"}`), err: assert.AnError, wantCode: http.StatusInternalServerError, wantMessage: "Failed to create patient"},
		{name: "get", call: get, wantCode: http.StatusOK, wantMessage: "Patient retrieved successfully"},
		{name: "get foreign patient", call: get, err: usecase.ErrPatientNotFound, wantCode: http.StatusNotFound, wantMessage: "Patient not found"},
		{name: "update", call: update(`{"gender":"female"}`), wantCode: http.StatusOK, wantMessage: "Patient updated successfully"},
		{name: "update foreign patient", call: update(`{"gender":"female"}`), err: usecase.ErrPatientNotFound, wantCode: http.StatusNotFound, wantMessage: "Patient not found"},
		{name: "update with bad date", call: update(`{"date_of_birth":"1990-02-20"}`), err: usecase.ErrInvalidDateFormat, wantCode: http.StatusBadRequest, wantMessage: usecase.ErrInvalidDateFormat.Error()},
		{name: "delete", call: remove, wantCode: http.StatusOK, wantMessage: "Patient deleted successfully"},
		{name: "delete foreign patient", call: remove, err: usecase.ErrPatientNotFound, wantCode: http.StatusNotFound, wantMessage: "Patient not found"},
		{name: "delete storage failure", call: remove, err: assert.AnError, wantCode: http.StatusInternalServerError, wantMessage: "Failed to delete patient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePatientUsecase{err: tt.err}
			h := NewPatientHandler(fake, validator.NewValidator())
			rec := httptest.NewRecorder()

			tt.call(h, rec)

			assert.Equal(t, tt.wantCode, rec.Code)
			got := decodeEnvelope(t, rec)
			assert.Equal(t, tt.err == nil, got.Success)
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.Equal(t, 1, fake.calls)
		})
	}
}

func TestPatientHandler_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
		run  func(h *PatientHandler, w http.ResponseWriter, r *http.Request)
	}{
		{
			name: "missing full name",
			req:  doctorRequest(http.MethodPost, "/api/v1/patients", `{"gender":"male"}`, nil),
			run:  (*PatientHandler).CreatePatient,
		},
		{
			name: "date of birth not YYYY-MM-DD",
			req:  doctorRequest(http.MethodPost, "/api/v1/patients", `{"full_name":"Ana Lima","date_of_birth":"12/04/1990"}`, nil),
			run:  (*PatientHandler).CreatePatient,
		},
		{
			name: "malformed body",
			req:  doctorRequest(http.MethodPost, "/api/v1/patients", `{`, nil),
			run:  (*PatientHandler).CreatePatient,
		},
		{
			name: "update date of birth not YYYY-MM-DD",
			req:  doctorRequest(http.MethodPut, "/api/v1/patients/x", `{"date_of_birth":"April 12"}`, map[string]string{"id": uuid.NewString()}),
			run:  (*PatientHandler).UpdatePatient,
		},
		{
			name: "patient id",
			req:  doctorRequest(http.MethodGet, "/api/v1/patients/x", "", map[string]string{"id": "x"}),
			run:  (*PatientHandler).GetPatient,
		},
		{
			name: "delete patient id",
			req:  doctorRequest(http.MethodDelete, "/api/v1/patients/x", "", map[string]string{"id": "x"}),
			run:  (*PatientHandler).DeletePatient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePatientUsecase{}
			h := NewPatientHandler(fake, validator.NewValidator())
			rec := httptest.NewRecorder()

			tt.run(h, rec, tt.req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, fake.calls)
		})
	}
}

func TestPatientHandler_RequiresAuthenticatedDoctor(t *testing.T) {
	fake := &fakePatientUsecase{}
	h := NewPatientHandler(fake, validator.NewValidator())
	rec := httptest.NewRecorder()

	h.GetAllPatients(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, fake.calls)
}
