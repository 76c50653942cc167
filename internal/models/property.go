package models

import (
	"time"

	"gorm.io/datatypes"
)

type PropertyStatus string

const (
	StatusPending  PropertyStatus = "pending"
	StatusApproved PropertyStatus = "approved"
	StatusRejected PropertyStatus = "rejected"
)

// Property is a marketplace listing. The owner reference is immutable
// after creation; status only changes through the moderation machine.
type Property struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"not null"`
	Description string                      `json:"description" gorm:"not null"`
	CategoryID  uint                        `json:"category_id" gorm:"index;not null"`
	Category    *Category                   `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	OwnerID     uint                        `json:"owner_id" gorm:"index;not null"`
	Owner       *User                       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Location    GeoPoint                    `json:"location" gorm:"type:jsonb;not null"`
	Address     string                      `json:"address" gorm:"not null"`
	Price       float64                     `json:"price" gorm:"not null"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Amenities   datatypes.JSONSlice[string] `json:"amenities"`
	Status      PropertyStatus              `json:"status" gorm:"type:varchar(16);default:pending;index"`
	IsAvailable bool                        `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// HasAmenities reports whether the property carries every listed amenity.
func (p *Property) HasAmenities(wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(p.Amenities))
	for _, a := range p.Amenities {
		have[a] = struct{}{}
	}
	for _, w := range wanted {
		if _, ok := have[w]; !ok {
			return false
		}
	}
	return true
}
