package favorites

import (
	"context"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository owns favorite persistence.
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

// Create inserts a favorite row. The unique index on (user_id, product_id)
// rejects a second save of the same product.
func (r *Repository) Create(ctx context.Context, favorite *models.Favorite) (*models.Favorite, error) {
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return nil, err
	}
	return favorite, nil
}

// DeleteByUserProduct removes the favorite for a (user, product) pair and
// reports whether a row was actually deleted.
func (r *Repository) DeleteByUserProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListForUser returns a user's saved products, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var rows []models.Favorite
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ProductIDsForUser returns the set of product IDs the user has saved.
func (r *Repository) ProductIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("product_id", &ids).Error
	return ids, err
}
