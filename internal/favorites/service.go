package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abhi-engg/farmstand-backend/pkg/db"
	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes favorite toggling and listing.
type Service interface {
	Toggle(ctx context.Context, userID, productID uuid.UUID) (*ToggleResult, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]FavoriteDTO, error)
	IDsFor(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

type favoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) (*models.Favorite, error)
	DeleteByUserProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	ProductIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type productLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     favoriteRepository
	products productLookup
}

// ServiceParams bundles the favorites service dependencies.
type ServiceParams struct {
	Repo     favoriteRepository
	Products productLookup
}

// NewService constructs the favorites service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("favorite repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product lookup is required")
	}
	return &service{repo: params.Repo, products: params.Products}, nil
}

// Toggle flips the saved state of a product for the user. Two consecutive
// calls return the product to its original state.
func (s *service) Toggle(ctx context.Context, userID, productID uuid.UUID) (*ToggleResult, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	deleted, err := s.repo.DeleteByUserProduct(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove favorite")
	}
	if deleted {
		return &ToggleResult{ProductID: productID, IsFavorite: false}, nil
	}

	_, err = s.repo.Create(ctx, &models.Favorite{UserID: userID, ProductID: productID})
	if err != nil {
		// A concurrent toggle may have inserted the row first. The product
		// is saved either way.
		if db.IsUniqueViolation(err, "favorites_user_product_key") {
			return &ToggleResult{ProductID: productID, IsFavorite: true}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save favorite")
	}
	return &ToggleResult{ProductID: productID, IsFavorite: true}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]FavoriteDTO, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list favorites")
	}
	dtos := make([]FavoriteDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, NewFavoriteDTO(&rows[i]))
	}
	return dtos, nil
}

// IDsFor satisfies the catalog's favorite lookup so listings can mark
// saved products for the requesting user.
func (s *service) IDsFor(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	ids, err := s.repo.ProductIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
