package repository

import (
	"context"

	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
)

type CategoryRepository struct {
	Repository[models.Category]
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{NewRepository[models.Category](db)}
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	return r.first(ctx, "name = ?", name)
}
