package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medassist/internal/delivery/dto"
	"medassist/internal/infrastructure/ai"
	"medassist/internal/service"
	"medassist/internal/usecase"
	"medassist/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeSummaryUsecase struct {
	err   error
	calls int
}

func (f *fakeSummaryUsecase) Summarize(_ context.Context, _, _ uuid.UUID, _ *dto.CreateSummaryRequest) (*dto.SummaryResultResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SummaryResultResponse{Result: json.RawMessage(`{"summary":"Stable"}`)}, nil
}

func (f *fakeSummaryUsecase) GetSummaries(_ context.Context, _, _ uuid.UUID) (*dto.MedicalSummaryListResponse, error) {
	f.calls++
	return &dto.MedicalSummaryListResponse{}, f.err
}

func TestSummaryHandler_CreateSummary_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "stored", wantCode: http.StatusCreated},
		{name: "foreign patient", err: usecase.ErrPatientNotFound, wantCode: http.StatusNotFound},
		{name: "rate limited", err: ai.ErrRateLimited, wantCode: http.StatusTooManyRequests},
		{name: "no summary", err: service.ErrNoSummary, wantCode: http.StatusBadGateway},
		{name: "upstream status", err: ai.ErrUpstream, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSummaryUsecase{err: tt.err}
			h := NewSummaryHandler(fake, validator.NewValidator())
			rec := httptest.NewRecorder()

			id := uuid.NewString()
			h.CreateSummary(rec, doctorRequest(http.MethodPost, "/api/v1/patients/"+id+"/summaries", `{"medical_record_text":"BP 120/80"}`, map[string]string{"id": id}))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, 1, fake.calls)
		})
	}
}

func TestSummaryHandler_GetSummaries_ForeignPatient(t *testing.T) {
	h := NewSummaryHandler(&fakeSummaryUsecase{err: usecase.ErrPatientNotFound}, validator.NewValidator())
	rec := httptest.NewRecorder()

	id := uuid.NewString()
	h.GetSummaries(rec, doctorRequest(http.MethodGet, "/api/v1/patients/"+id+"/summaries", "", map[string]string{"id": id}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Patient not found", decodeEnvelope(t, rec).Message)
}

func TestSummaryHandler_CreateSummary_RequiresText(t *testing.T) {
	fake := &fakeSummaryUsecase{}
	h := NewSummaryHandler(fake, validator.NewValidator())
	rec := httptest.NewRecorder()

	id := uuid.NewString()
	h.CreateSummary(rec, doctorRequest(http.MethodPost, "/api/v1/patients/"+id+"/summaries", `{}`, map[string]string{"id": id}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, fake.calls)
}
