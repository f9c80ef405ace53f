package repository

import (
	"context"

	"medassist/internal/domain/entity"
	domainRepo "medassist/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type symptomRecordRepository struct{}

func NewSymptomRecordRepository() domainRepo.SymptomRecordRepository {
	return &symptomRecordRepository{}
}

func (r *symptomRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.SymptomRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *symptomRecordRepository) FindByPatientID(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) ([]entity.SymptomRecord, error) {
	var records []entity.SymptomRecord
	err := db.WithContext(ctx).
		Preload("Diagnoses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Diagnoses.Treatments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
