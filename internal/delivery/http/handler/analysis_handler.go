package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medassist/internal/delivery/dto"
	"medassist/internal/usecase"
	"medassist/pkg/response"
	"medassist/pkg/validator"
)

type AnalysisHandler struct {
	analysisUsecase usecase.SymptomAnalysisUsecase
	validator       *validator.CustomValidator
}

func NewAnalysisHandler(analysisUsecase usecase.SymptomAnalysisUsecase, validator *validator.CustomValidator) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUsecase: analysisUsecase,
		validator:       validator,
	}
}

// CreateAnalysis records symptoms, then stores the model's diagnosis and treatment
// @Summary Analyze symptoms for a patient
// @Tags Analyses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.CreateAnalysisRequest true "Symptoms"
// @Success 201 {object} response.Response
// @Failure 402 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /patients/{id}/analyses [post]
func (h *AnalysisHandler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	patientID, ok := pathUUID(w, r, "id", "patient")
	if !ok {
		return
	}

	var req dto.CreateAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.analysisUsecase.Analyze(r.Context(), doctorID, patientID, &req)
	if err != nil {
		writeAIError(w, err, "Failed to analyze symptoms")
		return
	}

	response.Success(w, http.StatusCreated, "Analysis completed successfully", result)
}

// GetSymptomRecords returns a patient's records with diagnoses and treatments
// @Router /patients/{id}/symptom-records [get]
func (h *AnalysisHandler) GetSymptomRecords(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	patientID, ok := pathUUID(w, r, "id", "patient")
	if !ok {
		return
	}

	records, err := h.analysisUsecase.GetHistory(r.Context(), doctorID, patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get symptom records")
		return
	}

	response.Success(w, http.StatusOK, "Symptom records retrieved successfully", records)
}
