package database

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/models"
)

// PropertyFilter is the store-level filter for approved-property queries.
// All set fields compose with AND; geospatial filtering happens above the
// store, in the query engine.
type PropertyFilter struct {
	Text       string
	CategoryID *uint
	PriceMin   *float64
	PriceMax   *float64
	Amenities  []string
}

func (d *Database) CreateProperty(ctx context.Context, property *models.Property) error {
	if err := d.db.WithContext(ctx).Create(property).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create property", err)
	}
	return nil
}

// PropertyByID returns a property in any moderation state.
func (d *Database) PropertyByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := d.db.WithContext(ctx).
		Preload("Category").
		Preload("Owner").
		First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "property not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load property", err)
	}
	return &property, nil
}

// ApprovedByID returns a property only when its status is approved.
// Unapproved listings stay invisible here, including to their owner.
func (d *Database) ApprovedByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := d.db.WithContext(ctx).
		Preload("Category").
		Preload("Owner").
		Where("id = ? AND status = ?", id, models.StatusApproved).
		First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "property not found or not approved")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load property", err)
	}
	return &property, nil
}

func (d *Database) ListApproved(ctx context.Context, offset, limit int) ([]models.Property, error) {
	var properties []models.Property
	err := d.db.WithContext(ctx).
		Preload("Category").
		Preload("Owner").
		Where("status = ?", models.StatusApproved).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&properties).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list properties", err)
	}
	return properties, nil
}

func (d *Database) CountApproved(ctx context.Context) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("status = ?", models.StatusApproved).
		Count(&total).Error
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "failed to count properties", err)
	}
	return total, nil
}

// FilterApproved applies equality, range, containment and text filters in
// the store. Text matches rank against title and description; amenity
// containment uses jsonb superset semantics, so every listed amenity must
// be present.
func (d *Database) FilterApproved(ctx context.Context, filter PropertyFilter) ([]models.Property, error) {
	query := d.db.WithContext(ctx).
		Preload("Category").
		Preload("Owner").
		Where("status = ?", models.StatusApproved)

	if filter.Text != "" {
		query = query.Where(
			"to_tsvector('english', title || ' ' || description) @@ plainto_tsquery('english', ?)",
			filter.Text,
		)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}
	if len(filter.Amenities) > 0 {
		wanted, err := json.Marshal(filter.Amenities)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to encode amenities filter", err)
		}
		query = query.Where("amenities @> ?", string(wanted))
	}

	var properties []models.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to filter properties", err)
	}
	return properties, nil
}

// UpdateProperty persists content-field changes. The owner reference is
// never touched here.
func (d *Database) UpdateProperty(ctx context.Context, property *models.Property) error {
	if err := d.db.WithContext(ctx).Save(property).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update property", err)
	}
	return nil
}

func (d *Database) DeleteProperty(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&models.Property{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete property", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "property not found")
	}
	return nil
}

func (d *Database) PropertiesByOwner(ctx context.Context, ownerID uint) ([]models.Property, error) {
	var properties []models.Property
	err := d.db.WithContext(ctx).
		Preload("Category").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list owner properties", err)
	}
	return properties, nil
}

func (d *Database) PropertiesByStatus(ctx context.Context, status models.PropertyStatus) ([]models.Property, error) {
	var properties []models.Property
	err := d.db.WithContext(ctx).
		Preload("Category").
		Preload("Owner").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list properties by status", err)
	}
	return properties, nil
}

func (d *Database) AllProperties(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := d.db.WithContext(ctx).
		Preload("Category").
		Preload("Owner").
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list properties", err)
	}
	return properties, nil
}

// SetPropertyStatus writes the moderation status regardless of prior state.
func (d *Database) SetPropertyStatus(ctx context.Context, id uint, status models.PropertyStatus) error {
	result := d.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return apperr.Wrap(apperr.Internal, "failed to update property status", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "property not found")
	}
	return nil
}

// DisableOwnerProperties is the bulk half of the ban cascade. Statuses
// stay untouched; only availability flips.
func (d *Database) DisableOwnerProperties(ctx context.Context, ownerID uint) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("owner_id = ?", ownerID).
		Update("is_available", false)
	if result.Error != nil {
		return 0, apperr.Wrap(apperr.Internal, "failed to disable owner properties", result.Error)
	}
	return result.RowsAffected, nil
}

func (d *Database) PropertyExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "failed to check property", err)
	}
	return count > 0, nil
}
