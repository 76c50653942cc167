package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/models"
)

func (d *Database) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := d.db.WithContext(ctx).Create(category).Error; err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "23505") {
			return apperr.New(apperr.Duplicate, "category already exists")
		}
		return apperr.Wrap(apperr.Internal, "failed to create category", err)
	}
	return nil
}

func (d *Database) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := d.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "category not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load category", err)
	}
	return &category, nil
}

func (d *Database) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := d.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "category not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load category", err)
	}
	return &category, nil
}

func (d *Database) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := d.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list categories", err)
	}
	return categories, nil
}

func (d *Database) UpdateCategory(ctx context.Context, category *models.Category) error {
	if err := d.db.WithContext(ctx).Save(category).Error; err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "23505") {
			return apperr.New(apperr.Duplicate, "category already exists")
		}
		return apperr.Wrap(apperr.Internal, "failed to update category", err)
	}
	return nil
}

func (d *Database) DeleteCategory(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&models.Category{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "category not found")
	}
	return nil
}
