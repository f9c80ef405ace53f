package converter

import (
	"medassist/internal/delivery/dto"
	"medassist/internal/domain/entity"
)

// DoctorProfileToResponse expects User to be loaded
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:            profile.UserID,
		Email:         profile.User.Email,
		FullName:      profile.User.FullName,
		LicenseNumber: derefString(profile.LicenseNumber),
		Specialty:     profile.Specialty,
		IsActive:      profile.User.IsActive,
	}
}

func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}
