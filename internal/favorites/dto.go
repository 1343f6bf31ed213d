package favorites

import (
	"time"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSummary is the compact product snapshot shown in a saved list.
type ProductSummary struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
	ImageURL *string         `json:"image_url,omitempty"`
	InStock  bool            `json:"in_stock"`
	Farmer   string          `json:"farmer"`
	Location string          `json:"location"`
}

// FavoriteDTO is one saved product entry.
type FavoriteDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Product   *ProductSummary `json:"product,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToggleResult reports the state after a toggle call.
type ToggleResult struct {
	ProductID  uuid.UUID `json:"product_id"`
	IsFavorite bool      `json:"is_favorite"`
}

// NewFavoriteDTO maps a favorite row with its preloaded product.
func NewFavoriteDTO(favorite *models.Favorite) FavoriteDTO {
	dto := FavoriteDTO{
		ID:        favorite.ID,
		ProductID: favorite.ProductID,
		CreatedAt: favorite.CreatedAt,
	}
	if favorite.Product != nil {
		dto.Product = &ProductSummary{
			ID:       favorite.Product.ID,
			Name:     favorite.Product.Name,
			Price:    favorite.Product.Price,
			Unit:     string(favorite.Product.Unit),
			ImageURL: favorite.Product.ImageURL,
			InStock:  favorite.Product.InStock,
			Farmer:   favorite.Product.Farmer,
			Location: favorite.Product.Location,
		}
	}
	return dto
}
