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

type SummaryHandler struct {
	summaryUsecase usecase.MedicalSummaryUsecase
	validator      *validator.CustomValidator
}

func NewSummaryHandler(summaryUsecase usecase.MedicalSummaryUsecase, validator *validator.CustomValidator) *SummaryHandler {
	return &SummaryHandler{
		summaryUsecase: summaryUsecase,
		validator:      validator,
	}
}

// CreateSummary summarizes free-text records and stores the result
// @Summary Summarize medical records
// @Tags Summaries
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Param request body dto.CreateSummaryRequest true "Record text"
// @Router /patients/{id}/summaries [post]
func (h *SummaryHandler) CreateSummary(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	patientID, ok := pathUUID(w, r, "id", "patient")
	if !ok {
		return
	}

	var req dto.CreateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.summaryUsecase.Summarize(r.Context(), doctorID, patientID, &req)
	if err != nil {
		writeAIError(w, err, "Failed to summarize records")
		return
	}

	response.Success(w, http.StatusCreated, "Summary created successfully", result)
}

// @Router /patients/{id}/summaries [get]
func (h *SummaryHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	patientID, ok := pathUUID(w, r, "id", "patient")
	if !ok {
		return
	}

	summaries, err := h.summaryUsecase.GetSummaries(r.Context(), doctorID, patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get summaries")
		return
	}

	response.Success(w, http.StatusOK, "Summaries retrieved successfully", summaries)
}
