package models

import "time"

type CascadeStatus string

const (
	CascadePending  CascadeStatus = "pending"
	CascadeComplete CascadeStatus = "complete"
)

// BanCascade records the intent of an owner ban before the bulk property
// update runs. A row stuck in pending marks a half-applied cascade that a
// supervisor can reconcile.
type BanCascade struct {
	ID                 string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID            uint          `json:"owner_id" gorm:"index;not null"`
	Status             CascadeStatus `json:"status" gorm:"type:varchar(16);default:pending;index"`
	PropertiesDisabled int64         `json:"properties_disabled"`
	LastError          string        `json:"last_error,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	CompletedAt        *time.Time    `json:"completed_at,omitempty"`
}
