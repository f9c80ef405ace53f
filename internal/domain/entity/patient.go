package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is owned by exactly one doctor. Only FullName is required.
type Patient struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	FullName           string     `gorm:"type:varchar(255);not null" json:"full_name"`
	DateOfBirth        *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender             string     `gorm:"type:varchar(50)" json:"gender,omitempty"`
	MedicalHistory     string     `gorm:"type:text" json:"medical_history,omitempty"`
	Allergies          string     `gorm:"type:text" json:"allergies,omitempty"`
	CurrentMedications string     `gorm:"type:text" json:"current_medications,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	SymptomRecords []SymptomRecord `gorm:"foreignKey:PatientID" json:"symptom_records,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
