package cart

import (
	"time"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the product detail embedded in a cart line.
type ProductSnapshot struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Unit         string          `json:"unit"`
	QuantityStep decimal.Decimal `json:"quantity_step"`
	ImageURL     *string         `json:"image_url,omitempty"`
	InStock      bool            `json:"in_stock"`
	Farmer       string          `json:"farmer"`
	Location     string          `json:"location"`
}

// CartItemDTO is one line of the cart with its computed subtotal.
type CartItemDTO struct {
	ID        uuid.UUID        `json:"id"`
	ProductID uuid.UUID        `json:"product_id"`
	Product   *ProductSnapshot `json:"product,omitempty"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	CreatedAt time.Time        `json:"created_at"`
}

// CartDTO is the full cart view. Total and item count are recomputed on
// every read, never stored.
type CartDTO struct {
	ID        uuid.UUID       `json:"id"`
	Items     []CartItemDTO   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AddItemRequest carries an add-to-cart payload.
type AddItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// UpdateQuantityRequest carries a quantity change for an existing line.
// The item ID comes from the URL, not the body.
type UpdateQuantityRequest struct {
	ItemID   uuid.UUID       `json:"-"`
	Quantity decimal.Decimal `json:"quantity"`
}

// NewCartDTO maps a cart with preloaded items and products into the
// response view, computing per-line subtotals and the running total.
func NewCartDTO(cart *models.Cart) *CartDTO {
	dto := &CartDTO{
		ID:        cart.ID,
		Items:     make([]CartItemDTO, 0, len(cart.Items)),
		Total:     decimal.Zero,
		UpdatedAt: cart.UpdatedAt,
	}
	for i := range cart.Items {
		item := newCartItemDTO(&cart.Items[i])
		dto.Total = dto.Total.Add(item.Subtotal)
		dto.Items = append(dto.Items, item)
	}
	dto.ItemCount = len(dto.Items)
	return dto
}

func newCartItemDTO(item *models.CartItem) CartItemDTO {
	dto := CartItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
	}
	if item.Product != nil {
		dto.Product = &ProductSnapshot{
			ID:           item.Product.ID,
			Name:         item.Product.Name,
			Price:        item.Product.Price,
			Unit:         string(item.Product.Unit),
			QuantityStep: item.Product.Unit.QuantityStep(),
			ImageURL:     item.Product.ImageURL,
			InStock:      item.Product.InStock,
			Farmer:       item.Product.Farmer,
			Location:     item.Product.Location,
		}
		dto.Subtotal = item.Product.Price.Mul(item.Quantity)
	}
	return dto
}
