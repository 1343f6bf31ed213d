package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds a user's open basket. At most one active cart exists per user,
// enforced by a partial unique index on (user_id) WHERE is_active.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:carts_user_id_idx"`
	IsActive  bool       `gorm:"column:is_active;not null"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
