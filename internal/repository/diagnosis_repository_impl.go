package repository

import (
	"context"

	"medassist/internal/domain/entity"
	domainRepo "medassist/internal/domain/repository"

	"gorm.io/gorm"
)

type diagnosisRepository struct{}

func NewDiagnosisRepository() domainRepo.DiagnosisRepository {
	return &diagnosisRepository{}
}

func (r *diagnosisRepository) Create(ctx context.Context, db *gorm.DB, diagnosis *entity.Diagnosis) error {
	return db.WithContext(ctx).Create(diagnosis).Error
}
