package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abhi-engg/farmstand-backend/internal/catalog"
	"github.com/Abhi-engg/farmstand-backend/pkg/db"
	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes the cart operations. Every mutation runs inside a single
// transaction so a returned view never reflects a partial update.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req UpdateQuantityRequest) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	BuyNow(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartDTO, error)
}

type service struct {
	db *db.Client
}

// ServiceParams bundles the cart service dependencies.
type ServiceParams struct {
	DB *db.Client
}

// NewService constructs the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	var view *CartDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		active, err := repo.GetOrCreateActiveCart(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cart")
		}
		view, err = loadView(ctx, repo, active.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartDTO, error) {
	var view *CartDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		active, err := repo.GetOrCreateActiveCart(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cart")
		}
		if err := addItemTx(ctx, tx, repo, active.ID, req); err != nil {
			return err
		}
		view, err = loadView(ctx, repo, active.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID uuid.UUID, req UpdateQuantityRequest) (*CartDTO, error) {
	var view *CartDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		active, err := repo.GetOrCreateActiveCart(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cart")
		}

		item, err := repo.FindItem(ctx, active.ID, req.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
		}

		// Zero or negative quantity means remove the line.
		if req.Quantity.Sign() <= 0 {
			if err := repo.DeleteItem(ctx, active.ID, item.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart item")
			}
		} else {
			product, err := catalog.NewRepository(tx).FindByID(ctx, item.ProductID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
			}
			if err := validateQuantity(product, req.Quantity); err != nil {
				return err
			}
			if err := repo.UpdateItemQuantity(ctx, item.ID, req.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
			}
		}

		view, err = loadView(ctx, repo, active.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartDTO, error) {
	var view *CartDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		active, err := repo.GetOrCreateActiveCart(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cart")
		}
		if err := repo.DeleteItem(ctx, active.ID, itemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart item")
		}
		view, err = loadView(ctx, repo, active.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	var view *CartDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		active, err := repo.GetOrCreateActiveCart(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cart")
		}
		if err := repo.ClearItems(ctx, active.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}
		view, err = loadView(ctx, repo, active.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// BuyNow empties the cart and adds the single requested product, so a
// checkout started from a product page contains exactly that product.
func (s *service) BuyNow(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartDTO, error) {
	var view *CartDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		active, err := repo.GetOrCreateActiveCart(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cart")
		}
		if err := repo.ClearItems(ctx, active.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}
		if err := addItemTx(ctx, tx, repo, active.ID, req); err != nil {
			return err
		}
		view, err = loadView(ctx, repo, active.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// addItemTx validates and applies one add-to-cart inside an open
// transaction. An existing line for the product accumulates the quantity,
// and the combined total is re-validated against the product's step.
func addItemTx(ctx context.Context, tx *gorm.DB, repo *Repository, cartID uuid.UUID, req AddItemRequest) error {
	product, err := catalog.NewRepository(tx).FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	if err := validateQuantity(product, req.Quantity); err != nil {
		return err
	}

	existing, err := repo.FindItemByProduct(ctx, cartID, req.ProductID)
	switch {
	case err == nil:
		combined := existing.Quantity.Add(req.Quantity)
		if err := validateQuantity(product, combined); err != nil {
			return err
		}
		if err := repo.UpdateItemQuantity(ctx, existing.ID, combined); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		_, err := repo.CreateItem(ctx, &models.CartItem{
			CartID:    cartID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart item")
		}
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}
	return nil
}

// validateQuantity enforces the unit step rule: weight and volume units
// (kg, litre) sell in 0.5 increments, everything else in whole units.
func validateQuantity(product *models.Product, quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	step := product.Unit.QuantityStep()
	if !quantity.Mod(step).IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity for unit %s must be a multiple of %s", product.Unit, step))
	}
	return nil
}

func loadView(ctx context.Context, repo *Repository, cartID uuid.UUID) (*CartDTO, error) {
	loaded, err := repo.LoadCart(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return NewCartDTO(loaded), nil
}
