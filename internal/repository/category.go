// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"galeto/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category lookups. Name
// resolution for publication is deliberately not exposed here: the publish
// transaction re-resolves the category name inside its own transaction
// boundary.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, err
}
