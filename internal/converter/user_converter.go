package converter

import (
	"medassist/internal/delivery/dto"
	"medassist/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Falls back to the role id when Role is not preloaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := user.Role.RoleName
	if role == "" {
		role = entity.RoleName(user.RoleID)
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.DoctorProfile = &dto.DoctorProfileResponse{
			LicenseNumber: derefString(user.DoctorProfile.LicenseNumber),
			Specialty:     user.DoctorProfile.Specialty,
		}
	}

	return response
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
