package repository

import (
	"context"

	"medassist/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalSummaryRepository interface {
	Create(ctx context.Context, db *gorm.DB, summary *entity.MedicalSummary) error
	FindByPatientID(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) ([]entity.MedicalSummary, error)
}
