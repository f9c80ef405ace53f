package repository

import (
	"context"

	"medassist/internal/domain/entity"
	domainRepo "medassist/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicalSummaryRepository struct{}

func NewMedicalSummaryRepository() domainRepo.MedicalSummaryRepository {
	return &medicalSummaryRepository{}
}

func (r *medicalSummaryRepository) Create(ctx context.Context, db *gorm.DB, summary *entity.MedicalSummary) error {
	return db.WithContext(ctx).Create(summary).Error
}

func (r *medicalSummaryRepository) FindByPatientID(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) ([]entity.MedicalSummary, error) {
	var summaries []entity.MedicalSummary
	err := db.WithContext(ctx).
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Order("created_at DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
