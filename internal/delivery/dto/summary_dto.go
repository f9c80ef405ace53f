package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateSummaryRequest struct {
	MedicalRecordText string `json:"medical_record_text" validate:"required"`
}

type MedicalSummaryResponse struct {
	ID           uuid.UUID `json:"id"`
	PatientID    uuid.UUID `json:"patient_id"`
	OriginalText string    `json:"original_text"`
	Summary      string    `json:"summary"`
	KeyFindings  []string  `json:"key_findings"`
	CreatedAt    time.Time `json:"created_at"`
}

type SummaryResultResponse struct {
	MedicalSummary MedicalSummaryResponse `json:"medical_summary"`
	Result         json.RawMessage        `json:"result"`
}

type MedicalSummaryListResponse struct {
	Summaries []MedicalSummaryResponse `json:"summaries"`
	Total     int                      `json:"total"`
}
