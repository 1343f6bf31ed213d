package catalog

import (
	"strings"

	"github.com/Abhi-engg/farmstand-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeaturedLimit caps the storefront featured carousel.
const FeaturedLimit = 6

// FeaturedMinRating is the average rating floor for featured products.
const FeaturedMinRating = 4.0

// ProductFilters describe the supported filter knobs for the browse endpoint.
type ProductFilters struct {
	CategoryID *uuid.UUID       `json:"category_id,omitempty"`
	Category   string           `json:"category,omitempty"`
	Search     string           `json:"search,omitempty"`
	PriceMin   *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax   *decimal.Decimal `json:"price_max,omitempty"`
	MinRating  *float64         `json:"min_rating,omitempty"`
	InStock    *bool            `json:"in_stock,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate/filter the catalog.
type ListProductsInput struct {
	Filters    ProductFilters
	Ordering   string
	Pagination pagination.Params
	UserID     *uuid.UUID
}

// orderingClause maps the public ordering keys onto SQL. Unknown keys fall
// back to newest-first rather than erroring.
func orderingClause(ordering string) string {
	key := strings.TrimSpace(ordering)
	desc := strings.HasPrefix(key, "-")
	key = strings.TrimPrefix(key, "-")

	column := ""
	switch key {
	case "created_at":
		column = "p.created_at"
	case "price":
		column = "p.price"
	case "name":
		column = "p.name"
	default:
		return "p.created_at DESC"
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}
