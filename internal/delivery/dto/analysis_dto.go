package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAnalysisRequest struct {
	Symptoms        string `json:"symptoms" validate:"required"`
	Severity        string `json:"severity" validate:"required,oneof=mild moderate severe critical"`
	Duration        string `json:"duration" validate:"omitempty,max=100"`
	AdditionalNotes string `json:"additional_notes"`
}

// Response DTOs

type SymptomRecordResponse struct {
	ID              uuid.UUID           `json:"id"`
	PatientID       uuid.UUID           `json:"patient_id"`
	Symptoms        string              `json:"symptoms"`
	Severity        string              `json:"severity"`
	Duration        string              `json:"duration,omitempty"`
	AdditionalNotes string              `json:"additional_notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	Diagnoses       []DiagnosisResponse `json:"diagnoses,omitempty"`
}

type DiagnosisResponse struct {
	ID                    uuid.UUID           `json:"id"`
	SymptomRecordID       uuid.UUID           `json:"symptom_record_id"`
	Diagnosis             string              `json:"diagnosis"`
	Confidence            string              `json:"confidence"`
	Reasoning             string              `json:"reasoning"`
	DifferentialDiagnoses []string            `json:"differential_diagnoses"`
	CreatedAt             time.Time           `json:"created_at"`
	Treatments            []TreatmentResponse `json:"treatments,omitempty"`
}

type TreatmentResponse struct {
	ID                   uuid.UUID `json:"id"`
	DiagnosisID          uuid.UUID `json:"diagnosis_id"`
	TreatmentPlan        string    `json:"treatment_plan"`
	Medications          []string  `json:"medications"`
	Priority             string    `json:"priority"`
	Precautions          string    `json:"precautions,omitempty"`
	FollowUpInstructions string    `json:"follow_up_instructions,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// AnalysisResponse carries the three stored rows together with the model
// payloads they were built from
type AnalysisResponse struct {
	SymptomRecord SymptomRecordResponse `json:"symptom_record"`
	Diagnosis     DiagnosisResponse     `json:"diagnosis"`
	Treatment     TreatmentResponse     `json:"treatment"`
	Analysis      json.RawMessage       `json:"analysis"`
	TreatmentPlan json.RawMessage       `json:"treatment_plan"`
}

type SymptomRecordListResponse struct {
	Records []SymptomRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
