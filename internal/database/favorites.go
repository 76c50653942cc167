package database

import (
	"context"
	"strings"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/models"
)

// FavoriteSummary is the projection returned when listing a user's
// bookmarks: the property resolved with its owner and category names.
type FavoriteSummary struct {
	PropertyID   uint    `json:"property_id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Address      string  `json:"address"`
	OwnerName    string  `json:"owner_name"`
	CategoryName string  `json:"category_name"`
}

func (d *Database) FavoriteExists(ctx context.Context, userID, propertyID uint) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "failed to check favorite", err)
	}
	return count > 0, nil
}

func (d *Database) AddFavorite(ctx context.Context, userID, propertyID uint) error {
	fav := models.Favorite{UserID: userID, PropertyID: propertyID}
	if err := d.db.WithContext(ctx).Create(&fav).Error; err != nil {
		// Concurrent adds race past the existence check; the unique
		// index is the final arbiter.
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "23505") {
			return apperr.New(apperr.Duplicate, "property already in favorites")
		}
		return apperr.Wrap(apperr.Internal, "failed to add favorite", err)
	}
	return nil
}

// FavoriteSummaries resolves a user's bookmarks to summary projections.
// The inner joins drop favorites whose property has since been deleted.
func (d *Database) FavoriteSummaries(ctx context.Context, userID uint) ([]FavoriteSummary, error) {
	var summaries []FavoriteSummary
	err := d.db.WithContext(ctx).
		Table("favorites").
		Select(`properties.id AS property_id,
			properties.title,
			properties.price,
			properties.address,
			users.first_name || ' ' || users.last_name AS owner_name,
			categories.name AS category_name`).
		Joins("JOIN properties ON properties.id = favorites.property_id").
		Joins("JOIN users ON users.id = properties.owner_id").
		Joins("JOIN categories ON categories.id = properties.category_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at").
		Scan(&summaries).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list favorites", err)
	}
	return summaries, nil
}
