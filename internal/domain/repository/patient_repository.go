package repository

import (
	"context"

	"medassist/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PatientRepository scopes every lookup to the owning doctor
type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, doctorID, id uuid.UUID) (*entity.Patient, error)
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Patient, error)
	Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	Delete(ctx context.Context, db *gorm.DB, doctorID, id uuid.UUID) error
}
