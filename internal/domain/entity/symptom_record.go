package entity

import (
	"time"

	"github.com/google/uuid"
)

// SymptomSeverity is the doctor-assessed severity of a symptom report
type SymptomSeverity string

const (
	SeverityMild     SymptomSeverity = "mild"
	SeverityModerate SymptomSeverity = "moderate"
	SeveritySevere   SymptomSeverity = "severe"
	SeverityCritical SymptomSeverity = "critical"
)

// SymptomRecord is the first link of the analysis chain
type SymptomRecord struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Symptoms        string          `gorm:"type:text;not null" json:"symptoms"`
	Severity        SymptomSeverity `gorm:"type:symptom_severity;not null" json:"severity"`
	Duration        string          `gorm:"type:varchar(100)" json:"duration,omitempty"`
	AdditionalNotes string          `gorm:"type:text" json:"additional_notes,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Diagnoses []Diagnosis `gorm:"foreignKey:SymptomRecordID" json:"diagnoses,omitempty"`
}

func (SymptomRecord) TableName() string {
	return "symptom_records"
}
