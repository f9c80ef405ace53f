package repository

import (
	"context"

	"medassist/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SymptomRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.SymptomRecord) error
	// FindByPatientID returns records newest first with diagnoses and treatments preloaded
	FindByPatientID(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) ([]entity.SymptomRecord, error)
}
