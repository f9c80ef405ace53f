package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medassist/internal/delivery/dto"
	"medassist/internal/infrastructure/ai"
	"medassist/internal/service"
	"medassist/pkg/response"
)

// FunctionHandler serves the stateless /functions/v1 endpoints. Responses are
// not wrapped in the API envelope: success is the model's tool arguments and
// failure is {"error": message}.
type FunctionHandler struct {
	clinicalAI service.ClinicalAIService
}

func NewFunctionHandler(clinicalAI service.ClinicalAIService) *FunctionHandler {
	return &FunctionHandler{
		clinicalAI: clinicalAI,
	}
}

func (h *FunctionHandler) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeSymptomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FunctionFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.clinicalAI.AnalyzeSymptoms(r.Context(), service.SymptomInput{
		Symptoms:       string(req.Symptoms),
		Severity:       string(req.Severity),
		Duration:       string(req.Duration),
		PatientHistory: string(req.PatientHistory),
	})
	writeFunctionResult(w, result, err)
}

func (h *FunctionHandler) SuggestTreatment(w http.ResponseWriter, r *http.Request) {
	var req dto.SuggestTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FunctionFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.clinicalAI.SuggestTreatment(r.Context(), service.TreatmentInput{
		Diagnosis:          string(req.Diagnosis),
		PatientInfo:        string(req.PatientInfo),
		Allergies:          string(req.Allergies),
		CurrentMedications: string(req.CurrentMedications),
	})
	writeFunctionResult(w, result, err)
}

func (h *FunctionHandler) SummarizeRecords(w http.ResponseWriter, r *http.Request) {
	var req dto.SummarizeRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FunctionFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.clinicalAI.SummarizeRecord(r.Context(), service.SummaryInput{
		MedicalRecordText: string(req.MedicalRecordText),
	})
	writeFunctionResult(w, result, err)
}

func writeFunctionResult(w http.ResponseWriter, result json.RawMessage, err error) {
	switch {
	case err == nil:
		response.RawJSON(w, http.StatusOK, result)
	case errors.Is(err, ai.ErrRateLimited):
		response.FunctionFailure(w, http.StatusTooManyRequests, ai.ErrRateLimited.Error())
	case errors.Is(err, ai.ErrPaymentRequired):
		response.FunctionFailure(w, http.StatusPaymentRequired, ai.ErrPaymentRequired.Error())
	default:
		response.FunctionFailure(w, http.StatusInternalServerError, err.Error())
	}
}
