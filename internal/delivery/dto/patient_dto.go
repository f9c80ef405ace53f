package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	FullName           string `json:"full_name" validate:"required,min=1,max=255"`
	DateOfBirth        string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender             string `json:"gender" validate:"omitempty,max=50"`
	MedicalHistory     string `json:"medical_history"`
	Allergies          string `json:"allergies"`
	CurrentMedications string `json:"current_medications"`
}

// UpdatePatientRequest replaces only the fields that are present
type UpdatePatientRequest struct {
	FullName           *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	DateOfBirth        *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender             *string `json:"gender" validate:"omitempty,max=50"`
	MedicalHistory     *string `json:"medical_history"`
	Allergies          *string `json:"allergies"`
	CurrentMedications *string `json:"current_medications"`
}

// Response DTOs

type PatientResponse struct {
	ID                 uuid.UUID `json:"id"`
	DoctorID           uuid.UUID `json:"doctor_id"`
	FullName           string    `json:"full_name"`
	DateOfBirth        string    `json:"date_of_birth,omitempty"`
	Gender             string    `json:"gender,omitempty"`
	MedicalHistory     string    `json:"medical_history,omitempty"`
	Allergies          string    `json:"allergies,omitempty"`
	CurrentMedications string    `json:"current_medications,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
