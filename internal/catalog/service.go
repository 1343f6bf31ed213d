package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/Abhi-engg/farmstand-backend/pkg/media"
	"github.com/Abhi-engg/farmstand-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the read paths consumed by the storefront controllers.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	FeaturedProducts(ctx context.Context, userID *uuid.UUID) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*ProductDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
}

type catalogRepository interface {
	ListProducts(ctx context.Context, input ListProductsInput) ([]productListRecord, int64, error)
	FeaturedProducts(ctx context.Context) ([]productListRecord, error)
	GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, RatingAggregate, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// FavoriteLookup resolves which products a user has saved. Anonymous
// browsing passes a nil user and always sees is_favorite=false.
type FavoriteLookup interface {
	IDsFor(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

type service struct {
	repo      catalogRepository
	favorites FavoriteLookup
	media     media.Resolver
}

// ServiceParams bundles the catalog service dependencies. The zero-value
// resolver leaves image keys untouched.
type ServiceParams struct {
	Repo      catalogRepository
	Favorites FavoriteLookup
	Media     media.Resolver
}

// NewService constructs the catalog read service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if params.Favorites == nil {
		return nil, fmt.Errorf("favorite lookup is required")
	}
	return &service{repo: params.Repo, favorites: params.Favorites, media: params.Media}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	records, total, err := s.repo.ListProducts(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	favoriteIDs, err := s.favoriteIDs(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	products := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		_, favorite := favoriteIDs[record.ID]
		dto := record.toDTO(favorite)
		dto.ImageURL = s.media.URL(dto.ImageURL)
		products = append(products, dto)
	}

	return &ProductListResult{
		Products:   products,
		Pagination: pagination.BuildPage(input.Pagination, total),
	}, nil
}

func (s *service) FeaturedProducts(ctx context.Context, userID *uuid.UUID) ([]ProductDTO, error) {
	records, err := s.repo.FeaturedProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "featured products")
	}

	favoriteIDs, err := s.favoriteIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	products := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		_, favorite := favoriteIDs[record.ID]
		dto := record.toDTO(favorite)
		dto.ImageURL = s.media.URL(dto.ImageURL)
		products = append(products, dto)
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*ProductDTO, error) {
	product, agg, err := s.repo.GetProductDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	favoriteIDs, err := s.favoriteIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	_, favorite := favoriteIDs[product.ID]

	dto := NewProductDTO(product, agg, favorite)
	dto.ImageURL = s.media.URL(dto.ImageURL)
	return &dto, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	categories := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		categories = append(categories, *NewCategoryDTO(&rows[i]))
	}
	return categories, nil
}

func (s *service) favoriteIDs(ctx context.Context, userID *uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if userID == nil {
		return nil, nil
	}
	ids, err := s.favorites.IDsFor(ctx, *userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load favorites")
	}
	return ids, nil
}
