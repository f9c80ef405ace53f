package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MedicalSummary stores a model-produced summary next to the text it was made from
type MedicalSummary struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"doctor_id"`
	OriginalText string         `gorm:"type:text;not null" json:"original_text"`
	Summary      string         `gorm:"type:text;not null" json:"summary"`
	KeyFindings  pq.StringArray `gorm:"type:text[]" json:"key_findings"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (MedicalSummary) TableName() string {
	return "medical_summaries"
}
