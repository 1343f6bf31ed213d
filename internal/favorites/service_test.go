package favorites

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var favoriteDBSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	favoriteDBSeq++
	dsn := fmt.Sprintf("file:favorites_test_%d?mode=memory&cache=shared", favoriteDBSeq)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	statements := []string{
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
		`CREATE TABLE favorites (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			created_at DATETIME,
			UNIQUE (user_id, product_id)
		)`,
	}
	for _, stmt := range statements {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return conn
}

func mustCreateProduct(t *testing.T, tx *gorm.DB, name string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		Name:       name,
		Farmer:     "Ravi Kumar",
		Location:   "Pune",
		Price:      decimal.RequireFromString("40.00"),
		Unit:       "kg",
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

type productTable struct {
	db *gorm.DB
}

func (p productTable) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(conn),
		Products: productTable{db: conn},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, conn
}

func TestToggleRoundTrip(t *testing.T) {
	svc, conn := newTestService(t)
	product := mustCreateProduct(t, conn, "Tomato")
	userID := uuid.New()

	first, err := svc.Toggle(context.Background(), userID, product.ID)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !first.IsFavorite {
		t.Fatal("expected product to be saved after first toggle")
	}

	second, err := svc.Toggle(context.Background(), userID, product.ID)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if second.IsFavorite {
		t.Fatal("expected product to be unsaved after second toggle")
	}

	listed, err := svc.ListForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty list after round trip, got %d", len(listed))
	}
}

func TestToggleUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())
	var coded *pkgerrors.Error
	if !errors.As(err, &coded) || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListForUserIncludesProductSnapshot(t *testing.T) {
	svc, conn := newTestService(t)
	product := mustCreateProduct(t, conn, "Mango")
	userID := uuid.New()

	if _, err := svc.Toggle(context.Background(), userID, product.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	listed, err := svc.ListForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(listed))
	}
	entry := listed[0]
	if entry.Product == nil || entry.Product.Name != "Mango" {
		t.Fatalf("expected product snapshot, got %+v", entry)
	}
	if !entry.Product.Price.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("unexpected price %s", entry.Product.Price)
	}
}

func TestIDsForScopedToUser(t *testing.T) {
	svc, conn := newTestService(t)
	tomato := mustCreateProduct(t, conn, "Tomato")
	mango := mustCreateProduct(t, conn, "Mango")
	alice := uuid.New()
	bob := uuid.New()

	if _, err := svc.Toggle(context.Background(), alice, tomato.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), bob, mango.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	ids, err := svc.IDsFor(context.Background(), alice)
	if err != nil {
		t.Fatalf("ids: %v", err)
	}
	if _, ok := ids[tomato.ID]; !ok {
		t.Fatal("expected alice's saved product in set")
	}
	if _, ok := ids[mango.ID]; ok {
		t.Fatal("bob's favorite must not leak into alice's set")
	}
}
