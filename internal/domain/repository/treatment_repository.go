package repository

import (
	"context"

	"medassist/internal/domain/entity"

	"gorm.io/gorm"
)

type TreatmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, treatment *entity.Treatment) error
}
