package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DiagnosisConfidence is the confidence level reported by the model
type DiagnosisConfidence string

const (
	ConfidenceLow      DiagnosisConfidence = "low"
	ConfidenceMedium   DiagnosisConfidence = "medium"
	ConfidenceHigh     DiagnosisConfidence = "high"
	ConfidenceVeryHigh DiagnosisConfidence = "very_high"
)

// Diagnosis is derived from one SymptomRecord
type Diagnosis struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SymptomRecordID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"symptom_record_id"`
	DoctorID              uuid.UUID           `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Diagnosis             string              `gorm:"column:diagnosis;type:text;not null" json:"diagnosis"`
	Confidence            DiagnosisConfidence `gorm:"type:diagnosis_confidence;not null" json:"confidence"`
	Reasoning             string              `gorm:"type:text;not null" json:"reasoning"`
	DifferentialDiagnoses pq.StringArray      `gorm:"type:text[]" json:"differential_diagnoses"`
	CreatedAt             time.Time           `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Treatments []Treatment `gorm:"foreignKey:DiagnosisID" json:"treatments,omitempty"`
}

func (Diagnosis) TableName() string {
	return "diagnoses"
}
