package repository

import (
	"context"

	"medassist/internal/domain/entity"

	"gorm.io/gorm"
)

type DiagnosisRepository interface {
	Create(ctx context.Context, db *gorm.DB, diagnosis *entity.Diagnosis) error
}
