package models

import (
	"time"

	"github.com/google/uuid"
)

// Banner is a promotional slide shown on the storefront home screen.
type Banner struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title        string    `gorm:"column:title;not null"`
	Description  string    `gorm:"column:description;not null"`
	ImageURL     string    `gorm:"column:image_url;not null"`
	ButtonText   *string   `gorm:"column:button_text"`
	DisplayOrder int       `gorm:"column:display_order;not null"`
	IsActive     bool      `gorm:"column:is_active;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
