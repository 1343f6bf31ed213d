package banners

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/Abhi-engg/farmstand-backend/pkg/media"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BannerDTO is a promotional slide payload.
type BannerDTO struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	ButtonText   *string   `json:"button_text,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repository owns banner persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a banner row.
func (r *Repository) Create(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if banner.ID == uuid.Nil {
		banner.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

// ListActive returns the active banners in display order.
func (r *Repository) ListActive(ctx context.Context) ([]models.Banner, error) {
	var rows []models.Banner
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// Service exposes banner reads for the storefront home screen.
type Service interface {
	ListActive(ctx context.Context) ([]BannerDTO, error)
}

type bannerRepository interface {
	ListActive(ctx context.Context) ([]models.Banner, error)
}

type service struct {
	repo  bannerRepository
	media media.Resolver
}

// NewService constructs the banner service. The zero-value resolver leaves
// image keys untouched.
func NewService(repo bannerRepository, resolver media.Resolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("banner repository is required")
	}
	return &service{repo: repo, media: resolver}, nil
}

func (s *service) ListActive(ctx context.Context) ([]BannerDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list banners")
	}
	dtos := make([]BannerDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, BannerDTO{
			ID:           row.ID,
			Title:        row.Title,
			Description:  row.Description,
			ImageURL:     s.media.URLString(row.ImageURL),
			ButtonText:   row.ButtonText,
			DisplayOrder: row.DisplayOrder,
			CreatedAt:    row.CreatedAt,
		})
	}
	return dtos, nil
}
