package database

import (
	"fmt"

	"dgdorm/server/internal/models"
)

func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Country{},
		&models.City{},
		&models.Property{},
		&models.Favorite{},
		&models.BanCascade{},
	); err != nil {
		return fmt.Errorf("failed to run auto migration: %w", err)
	}

	// Full-text index over title and description
	if err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_fulltext
		ON properties
		USING GIN (to_tsvector('english', title || ' ' || description))
	`).Error; err != nil {
		return fmt.Errorf("failed to create text search index: %w", err)
	}

	// Containment queries on the amenity set
	if err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_amenities
		ON properties
		USING GIN (amenities)
	`).Error; err != nil {
		return fmt.Errorf("failed to create amenities index: %w", err)
	}

	return nil
}
