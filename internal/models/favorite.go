package models

import "time"

// Favorite links a user to a bookmarked property. The composite unique
// index keeps the bookmark set free of duplicates.
type Favorite struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"uniqueIndex:idx_favorites_user_property;not null"`
	PropertyID uint      `json:"property_id" gorm:"uniqueIndex:idx_favorites_user_property;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
