package catalog

import (
	"math"
	"time"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	"github.com/Abhi-engg/farmstand-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the catalog product payload returned to clients.
type ProductDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Farmer        string          `json:"farmer"`
	Location      string          `json:"location"`
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit"`
	QuantityStep  decimal.Decimal `json:"quantity_step"`
	ImageURL      *string         `json:"image_url,omitempty"`
	InStock       bool            `json:"in_stock"`
	Category      *CategoryDTO    `json:"category,omitempty"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int64           `json:"review_count"`
	IsFavorite    bool            `json:"is_favorite"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CategoryDTO is the browse payload for a category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Icon string    `json:"icon"`
}

// ProductListResult bundles one page of products with pagination metadata.
type ProductListResult struct {
	Products   []ProductDTO    `json:"products"`
	Pagination pagination.Page `json:"pagination"`
}

// roundRating keeps averages at one decimal place.
func roundRating(value float64) float64 {
	return math.Round(value*10) / 10
}

// NewCategoryDTO maps the persisted category.
func NewCategoryDTO(category *models.Category) *CategoryDTO {
	if category == nil {
		return nil
	}
	return &CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
		Icon: category.Icon,
	}
}

// NewProductDTO builds a DTO from the persisted model and its review aggregate.
func NewProductDTO(product *models.Product, agg RatingAggregate, favorite bool) ProductDTO {
	return ProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		Farmer:        product.Farmer,
		Location:      product.Location,
		Price:         product.Price,
		Unit:          string(product.Unit),
		QuantityStep:  product.Unit.QuantityStep(),
		ImageURL:      product.ImageURL,
		InStock:       product.InStock,
		Category:      NewCategoryDTO(product.Category),
		AverageRating: roundRating(agg.Average),
		ReviewCount:   agg.Count,
		IsFavorite:    favorite,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}
