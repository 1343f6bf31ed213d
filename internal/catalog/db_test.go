package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	"github.com/Abhi-engg/farmstand-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var catalogDBSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	catalogDBSeq++
	dsn := fmt.Sprintf("file:catalog_test_%d?mode=memory&cache=shared", catalogDBSeq)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	statements := []string{
		`CREATE TABLE categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			icon TEXT NOT NULL DEFAULT '',
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE products (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL,
			name TEXT NOT NULL,
			farmer TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			price NUMERIC NOT NULL,
			unit TEXT NOT NULL,
			image_url TEXT,
			in_stock BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE reviews (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			rating NUMERIC NOT NULL,
			comment TEXT,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (product_id, user_id)
		)`,
	}
	for _, stmt := range statements {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return conn
}

func mustCreateCategory(t *testing.T, tx *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:   uuid.New(),
		Name: name,
		Icon: "🥕",
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

type productSpec struct {
	name      string
	price     string
	unit      enums.ProductUnit
	inStock   bool
	farmer    string
	location  string
	createdAt time.Time
}

func mustCreateProduct(t *testing.T, tx *gorm.DB, categoryID uuid.UUID, spec productSpec) *models.Product {
	t.Helper()
	if spec.unit == "" {
		spec.unit = enums.ProductUnitKg
	}
	if spec.createdAt.IsZero() {
		spec.createdAt = time.Now().UTC()
	}
	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Name:       spec.name,
		Farmer:     spec.farmer,
		Location:   spec.location,
		Price:      decimal.RequireFromString(spec.price),
		Unit:       spec.unit,
		InStock:    spec.inStock,
		CreatedAt:  spec.createdAt,
		UpdatedAt:  spec.createdAt,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateReview(t *testing.T, tx *gorm.DB, productID uuid.UUID, rating int64) *models.Review {
	t.Helper()
	review := &models.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    uuid.New(),
		Rating:    decimal.NewFromInt(rating),
	}
	if err := tx.Create(review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	return review
}
