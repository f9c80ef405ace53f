package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorProfile holds the professional details of a doctor account
type DoctorProfile struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber *string   `gorm:"type:varchar(100);uniqueIndex" json:"license_number,omitempty"`
	Specialty     string    `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Patients []Patient `gorm:"foreignKey:DoctorID" json:"patients,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
