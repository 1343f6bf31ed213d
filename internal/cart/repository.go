package cart

import (
	"context"
	"errors"

	"github.com/Abhi-engg/farmstand-backend/pkg/db"
	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository owns cart and cart item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// GetOrCreateActiveCart returns the user's single active cart, creating one
// when absent. The partial unique index on (user_id) WHERE is_active makes
// a concurrent create lose with a unique violation, in which case the
// winner's cart is fetched instead.
func (r *Repository) GetOrCreateActiveCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := r.findActiveCart(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &models.Cart{ID: uuid.New(), UserID: userID, IsActive: true}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		if db.IsUniqueViolation(err, "carts_user_active_key") {
			return r.findActiveCart(ctx, userID)
		}
		return nil, err
	}
	return fresh, nil
}

func (r *Repository) findActiveCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// LoadCart fetches a cart with its items and their products, items newest
// first.
func (r *Repository) LoadCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("cart_items.created_at DESC")
		}).
		Preload("Items.Product").
		First(&cart, "id = ?", cartID).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindItem loads one cart line, scoped to the cart.
func (r *Repository) FindItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemByProduct loads the cart line for a product, if present.
func (r *Repository) FindItemByProduct(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new cart line.
func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemQuantity sets a line's quantity.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		UpdateColumn("quantity", quantity).Error
}

// DeleteItem removes a line, scoped to the cart. Returns
// gorm.ErrRecordNotFound when no matching line exists.
func (r *Repository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearItems deletes every line in the cart. Clearing an empty cart is a
// no-op.
func (r *Repository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}
