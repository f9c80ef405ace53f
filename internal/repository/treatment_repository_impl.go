package repository

import (
	"context"

	"medassist/internal/domain/entity"
	domainRepo "medassist/internal/domain/repository"

	"gorm.io/gorm"
)

type treatmentRepository struct{}

func NewTreatmentRepository() domainRepo.TreatmentRepository {
	return &treatmentRepository{}
}

func (r *treatmentRepository) Create(ctx context.Context, db *gorm.DB, treatment *entity.Treatment) error {
	return db.WithContext(ctx).Create(treatment).Error
}
