package catalog

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	"github.com/Abhi-engg/farmstand-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RatingAggregate carries the review rollup for one product.
type RatingAggregate struct {
	Average float64
	Count   int64
}

// ratingJoinClause attaches per-product review aggregates. COALESCE keeps
// unreviewed products at zero instead of NULL.
const ratingJoinClause = `LEFT JOIN (
    SELECT product_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count
    FROM reviews
    GROUP BY product_id
) r ON r.product_id = p.id`

const listSelectClause = `p.id, p.category_id, p.name, p.farmer, p.location, p.price, p.unit,
p.image_url, p.in_stock, p.created_at, p.updated_at,
c.name AS category_name, c.icon AS category_icon,
COALESCE(r.avg_rating, 0) AS average_rating,
COALESCE(r.review_count, 0) AS review_count`

// Repository wires together catalog persistence helpers.
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

// CreateCategory inserts a category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// CreateProduct inserts a product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductDetail fetches a product with its category and review aggregate.
func (r *Repository) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, RatingAggregate, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, RatingAggregate{}, err
	}

	agg, err := r.ratingFor(ctx, id)
	if err != nil {
		return &product, RatingAggregate{}, err
	}
	return &product, agg, nil
}

func (r *Repository) ratingFor(ctx context.Context, productID uuid.UUID) (RatingAggregate, error) {
	type aggRow struct {
		Average sql.NullFloat64
		Count   int64
	}
	var row aggRow
	err := r.db.WithContext(ctx).
		Raw("SELECT AVG(rating) AS average, COUNT(*) AS count FROM reviews WHERE product_id = ?", productID).
		Scan(&row).
		Error
	if err != nil {
		return RatingAggregate{}, err
	}
	return RatingAggregate{Average: row.Average.Float64, Count: row.Count}, nil
}

// ListProducts pages through the catalog applying the provided filters.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) ([]productListRecord, int64, error) {
	params := input.Pagination.Normalize()

	qb := r.db.WithContext(ctx).
		Table("products p").
		Joins("JOIN categories c ON c.id = p.category_id").
		Joins(ratingJoinClause)

	qb = applyFilters(qb, input.Filters)

	var total int64
	if err := qb.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []productListRecord
	err := qb.
		Select(listSelectClause).
		Order(orderingClause(input.Ordering)).
		Order("p.id DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Scan(&records).
		Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// FeaturedProducts returns the best-rated products for the storefront
// carousel: average rating at or above the floor with at least one review,
// best average first, newest breaking ties.
func (r *Repository) FeaturedProducts(ctx context.Context) ([]productListRecord, error) {
	var records []productListRecord
	err := r.db.WithContext(ctx).
		Table("products p").
		Joins("JOIN categories c ON c.id = p.category_id").
		Joins(ratingJoinClause).
		Select(listSelectClause).
		Where("r.review_count >= 1").
		Where("r.avg_rating >= ?", FeaturedMinRating).
		Order("average_rating DESC").
		Order("p.created_at DESC").
		Limit(FeaturedLimit).
		Scan(&records).
		Error
	return records, err
}

func applyFilters(qb *gorm.DB, filters ProductFilters) *gorm.DB {
	if filters.CategoryID != nil {
		qb = qb.Where("p.category_id = ?", *filters.CategoryID)
	}
	// "all" is the storefront's no-filter sentinel.
	if name := strings.TrimSpace(filters.Category); name != "" && !strings.EqualFold(name, "all") {
		qb = qb.Where("LOWER(c.name) = LOWER(?)", name)
	}
	if filters.PriceMin != nil {
		qb = qb.Where("p.price >= ?", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		qb = qb.Where("p.price <= ?", *filters.PriceMax)
	}
	if filters.MinRating != nil {
		qb = qb.Where("COALESCE(r.avg_rating, 0) >= ?", *filters.MinRating)
	}
	if filters.InStock != nil {
		qb = qb.Where("p.in_stock = ?", *filters.InStock)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.name) LIKE ? OR LOWER(p.farmer) LIKE ? OR LOWER(p.location) LIKE ? OR LOWER(c.name) LIKE ?)", pattern, pattern, pattern, pattern)
	}
	return qb
}

type productListRecord struct {
	ID            uuid.UUID
	CategoryID    uuid.UUID
	Name          string
	Farmer        string
	Location      string
	Price         decimal.Decimal
	Unit          string
	ImageURL      sql.NullString
	InStock       bool
	CategoryName  string
	CategoryIcon  string
	AverageRating float64
	ReviewCount   int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (rec productListRecord) toDTO(favorite bool) ProductDTO {
	unit := enums.ProductUnit(rec.Unit)
	return ProductDTO{
		ID:           rec.ID,
		Name:         rec.Name,
		Farmer:       rec.Farmer,
		Location:     rec.Location,
		Price:        rec.Price,
		Unit:         rec.Unit,
		QuantityStep: unit.QuantityStep(),
		ImageURL:     nullStringPtr(rec.ImageURL),
		InStock:      rec.InStock,
		Category: &CategoryDTO{
			ID:   rec.CategoryID,
			Name: rec.CategoryName,
			Icon: rec.CategoryIcon,
		},
		AverageRating: roundRating(rec.AverageRating),
		ReviewCount:   rec.ReviewCount,
		IsFavorite:    favorite,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
