package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Review is a user's rating and optional comment for a product. A user can
// review a product at most once.
type Review struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index:reviews_product_id_idx;uniqueIndex:reviews_product_user_key"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:reviews_product_user_key"`
	Rating    decimal.Decimal `gorm:"column:rating;type:numeric(3,1);not null"`
	Comment   *string         `gorm:"column:comment"`
	User      *User           `gorm:"foreignKey:UserID"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
