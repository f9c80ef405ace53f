package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// UpdateDoctorSelfRequest leaves fields that are omitted untouched
type UpdateDoctorSelfRequest struct {
	FullName      *string `json:"full_name" validate:"omitempty,min=2"`
	LicenseNumber *string `json:"license_number" validate:"omitempty,max=100"`
	Specialty     *string `json:"specialty" validate:"omitempty,max=100"`
}

// Response DTOs

type DoctorProfileResponse struct {
	LicenseNumber string `json:"license_number,omitempty"`
	Specialty     string `json:"specialty,omitempty"`
}

type DoctorResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	LicenseNumber string    `json:"license_number,omitempty"`
	Specialty     string    `json:"specialty,omitempty"`
	IsActive      *bool     `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
