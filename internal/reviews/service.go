package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abhi-engg/farmstand-backend/pkg/db"
	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ratingMin = decimal.NewFromInt(1)
	ratingMax = decimal.NewFromInt(5)
)

// Service exposes review reads and writes to the controllers.
type Service interface {
	AddReview(ctx context.Context, input CreateReviewInput) (*ReviewDTO, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error)
	DeleteReview(ctx context.Context, id, userID uuid.UUID) error
}

type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type productLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     reviewRepository
	products productLookup
}

// ServiceParams bundles the review service dependencies.
type ServiceParams struct {
	Repo     reviewRepository
	Products productLookup
}

// NewService constructs the review service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("review repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product lookup is required")
	}
	return &service{repo: params.Repo, products: params.Products}, nil
}

func (s *service) AddReview(ctx context.Context, input CreateReviewInput) (*ReviewDTO, error) {
	if input.Rating.LessThan(ratingMin) || input.Rating.GreaterThan(ratingMax) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	review := &models.Review{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	created, err := s.repo.Create(ctx, review)
	if err != nil {
		if db.IsUniqueViolation(err, "reviews_product_user_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}

	dto := NewReviewDTO(created)
	return &dto, nil
}

func (s *service) ListForProduct(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error) {
	rows, err := s.repo.ListForProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	dtos := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, NewReviewDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) DeleteReview(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete review")
	}
	return nil
}
