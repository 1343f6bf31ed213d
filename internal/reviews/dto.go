package reviews

import (
	"strings"
	"time"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReviewDTO is the external shape of one product review.
type ReviewDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	UserID    uuid.UUID       `json:"user_id"`
	UserName  string          `json:"user_name"`
	Rating    decimal.Decimal `json:"rating"`
	Comment   *string         `json:"comment,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateReviewInput carries a new review submission. Ratings accept half
// steps, so the range check lives in the service rather than a validator tag.
type CreateReviewInput struct {
	ProductID uuid.UUID       `json:"-"`
	UserID    uuid.UUID       `json:"-"`
	Rating    decimal.Decimal `json:"rating" validate:"required"`
	Comment   *string         `json:"comment,omitempty"`
}

// NewReviewDTO maps a review row (with its user preloaded) to the response
// payload. A missing user association yields an empty display name.
func NewReviewDTO(review *models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		dto.UserName = strings.TrimSpace(review.User.FirstName + " " + review.User.LastName)
	}
	return dto
}
