package converter

import (
	"medassist/internal/delivery/dto"
	"medassist/internal/domain/entity"
)

const DateLayout = "2006-01-02"

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:                 patient.ID,
		DoctorID:           patient.DoctorID,
		FullName:           patient.FullName,
		Gender:             patient.Gender,
		MedicalHistory:     patient.MedicalHistory,
		Allergies:          patient.Allergies,
		CurrentMedications: patient.CurrentMedications,
		CreatedAt:          patient.CreatedAt,
		UpdatedAt:          patient.UpdatedAt,
	}
	if patient.DateOfBirth != nil {
		response.DateOfBirth = patient.DateOfBirth.Format(DateLayout)
	}
	return response
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
