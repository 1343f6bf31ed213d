package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Abhi-engg/farmstand-backend/pkg/enums"
)

// Product represents a farmer's produce listing.
type Product struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID uuid.UUID         `gorm:"column:category_id;type:uuid;not null;index:products_category_id_idx"`
	Name       string            `gorm:"column:name;not null"`
	Farmer     string            `gorm:"column:farmer;not null"`
	Location   string            `gorm:"column:location;not null"`
	Price      decimal.Decimal   `gorm:"column:price;type:numeric(10,2);not null"`
	Unit       enums.ProductUnit `gorm:"column:unit;not null"`
	ImageURL   *string           `gorm:"column:image_url"`
	InStock    bool              `gorm:"column:in_stock;not null"`
	Category   *Category         `gorm:"foreignKey:CategoryID"`
	Reviews    []Review          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
