package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	"github.com/Abhi-engg/farmstand-backend/pkg/enums"
	"github.com/Abhi-engg/farmstand-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

func TestListProductsFilters(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	veg := mustCreateCategory(t, conn, "vegetables")
	fruit := mustCreateCategory(t, conn, "fruits")

	tomato := mustCreateProduct(t, conn, veg.ID, productSpec{
		name: "Tomato", price: "40.00", unit: enums.ProductUnitKg, inStock: true,
	})
	spinach := mustCreateProduct(t, conn, veg.ID, productSpec{
		name: "Spinach", price: "25.00", unit: enums.ProductUnitBunch, inStock: true,
		farmer: "Green Valley Farm", location: "Nashik",
	})
	mustCreateProduct(t, conn, fruit.ID, productSpec{
		name: "Mango", price: "120.00", unit: enums.ProductUnitKg, inStock: true,
	})
	mustCreateProduct(t, conn, fruit.ID, productSpec{
		name: "Out Of Season Litchi", price: "200.00", unit: enums.ProductUnitKg, inStock: false,
	})

	t.Run("by category", func(t *testing.T) {
		records, total, err := repo.ListProducts(ctx, ListProductsInput{
			Filters: ProductFilters{CategoryID: &veg.ID},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 2 || len(records) != 2 {
			t.Fatalf("expected 2 vegetables, got total=%d len=%d", total, len(records))
		}
	})

	t.Run("by price range", func(t *testing.T) {
		min := decimal.RequireFromString("30.00")
		max := decimal.RequireFromString("150.00")
		records, _, err := repo.ListProducts(ctx, ListProductsInput{
			Filters: ProductFilters{PriceMin: &min, PriceMax: &max},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected tomato and mango, got %d records", len(records))
		}
	})

	t.Run("search matches farmer", func(t *testing.T) {
		records, _, err := repo.ListProducts(ctx, ListProductsInput{
			Filters: ProductFilters{Search: "green valley"},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 1 || records[0].ID != spinach.ID {
			t.Fatalf("expected only the spinach, got %+v", records)
		}
	})

	t.Run("search matches location", func(t *testing.T) {
		records, _, err := repo.ListProducts(ctx, ListProductsInput{
			Filters: ProductFilters{Search: "nashik"},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 1 || records[0].ID != spinach.ID {
			t.Fatalf("expected only the spinach, got %+v", records)
		}
	})

	t.Run("in stock only", func(t *testing.T) {
		inStock := true
		_, total, err := repo.ListProducts(ctx, ListProductsInput{
			Filters: ProductFilters{InStock: &inStock},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 3 {
			t.Fatalf("expected 3 in-stock products, got %d", total)
		}
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		records, _, err := repo.ListProducts(ctx, ListProductsInput{
			Filters: ProductFilters{Search: "toMA"},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 1 || records[0].ID != tomato.ID {
			t.Fatalf("expected tomato, got %+v", records)
		}
	})

	t.Run("min rating drops unrated products", func(t *testing.T) {
		mustCreateReview(t, conn, tomato.ID, 5)
		minRating := 4.0
		records, _, err := repo.ListProducts(ctx, ListProductsInput{
			Filters: ProductFilters{MinRating: &minRating},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 1 || records[0].ID != tomato.ID {
			t.Fatalf("expected only rated tomato, got %d records", len(records))
		}
		if records[0].AverageRating != 5 || records[0].ReviewCount != 1 {
			t.Fatalf("unexpected aggregate %+v", records[0])
		}
	})
}

func TestListProductsOrderingAndPagination(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	veg := mustCreateCategory(t, conn, "vegetables")
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mustCreateProduct(t, conn, veg.ID, productSpec{name: "Beet", price: "30.00", inStock: true, createdAt: base})
	mustCreateProduct(t, conn, veg.ID, productSpec{name: "Carrot", price: "20.00", inStock: true, createdAt: base.Add(time.Hour)})
	mustCreateProduct(t, conn, veg.ID, productSpec{name: "Radish", price: "10.00", inStock: true, createdAt: base.Add(2 * time.Hour)})

	t.Run("default is newest first", func(t *testing.T) {
		records, _, err := repo.ListProducts(ctx, ListProductsInput{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if records[0].Name != "Radish" || records[2].Name != "Beet" {
			t.Fatalf("unexpected order: %s, %s, %s", records[0].Name, records[1].Name, records[2].Name)
		}
	})

	t.Run("price ascending", func(t *testing.T) {
		records, _, err := repo.ListProducts(ctx, ListProductsInput{Ordering: "price"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if records[0].Name != "Radish" || records[2].Name != "Beet" {
			t.Fatalf("unexpected price order: %+v", records)
		}
	})

	t.Run("name descending", func(t *testing.T) {
		records, _, err := repo.ListProducts(ctx, ListProductsInput{Ordering: "-name"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if records[0].Name != "Radish" || records[2].Name != "Beet" {
			t.Fatalf("unexpected name order: %+v", records)
		}
	})

	t.Run("unknown ordering falls back to newest", func(t *testing.T) {
		records, _, err := repo.ListProducts(ctx, ListProductsInput{Ordering: "evil; DROP TABLE products"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if records[0].Name != "Radish" {
			t.Fatalf("expected newest first fallback, got %s", records[0].Name)
		}
	})

	t.Run("pagination windows", func(t *testing.T) {
		records, total, err := repo.ListProducts(ctx, ListProductsInput{
			Pagination: pagination.Params{Page: 2, Limit: 2},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 3 {
			t.Fatalf("expected total 3, got %d", total)
		}
		if len(records) != 1 || records[0].Name != "Beet" {
			t.Fatalf("expected last page with beet, got %+v", records)
		}
	})
}

func TestFeaturedProducts(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	veg := mustCreateCategory(t, conn, "vegetables")
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	star := mustCreateProduct(t, conn, veg.ID, productSpec{name: "Star Tomato", price: "40.00", inStock: true, createdAt: base})
	mustCreateReview(t, conn, star.ID, 5)
	mustCreateReview(t, conn, star.ID, 4)

	middling := mustCreateProduct(t, conn, veg.ID, productSpec{name: "Middling Okra", price: "30.00", inStock: true, createdAt: base})
	mustCreateReview(t, conn, middling.ID, 3)

	exactFloor := mustCreateProduct(t, conn, veg.ID, productSpec{name: "Floor Beans", price: "20.00", inStock: true, createdAt: base.Add(time.Hour)})
	mustCreateReview(t, conn, exactFloor.ID, 4)

	// no reviews at all
	mustCreateProduct(t, conn, veg.ID, productSpec{name: "Unrated Gourd", price: "10.00", inStock: true, createdAt: base})

	// featuring is rating-driven only; stock state does not gate it
	outOfStock := mustCreateProduct(t, conn, veg.ID, productSpec{name: "Sold Out Peas", price: "50.00", inStock: false, createdAt: base})
	mustCreateReview(t, conn, outOfStock.ID, 5)

	records, err := repo.FeaturedProducts(ctx)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 featured products, got %d", len(records))
	}
	if records[0].ID != outOfStock.ID {
		t.Fatalf("expected best average first, got %s", records[0].Name)
	}
	if records[1].ID != star.ID {
		t.Fatalf("expected second-best average next, got %s", records[1].Name)
	}
	if records[2].ID != exactFloor.ID {
		t.Fatalf("expected 4.0 average to qualify, got %s", records[2].Name)
	}
	if records[0].InStock {
		t.Fatal("expected the sold-out product to read back as out of stock")
	}
}

func TestCreateProductPersistsOutOfStock(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	veg := mustCreateCategory(t, conn, "vegetables")
	created, err := repo.CreateProduct(ctx, &models.Product{
		CategoryID: veg.ID,
		Name:       "Sold Out Peas",
		Farmer:     "Ravi Kumar",
		Location:   "Pune",
		Price:      decimal.RequireFromString("50.00"),
		Unit:       enums.ProductUnitKg,
		InStock:    false,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.InStock {
		t.Fatal("expected in_stock=false to survive the insert")
	}
}

func TestGetProductDetail(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	veg := mustCreateCategory(t, conn, "vegetables")
	product := mustCreateProduct(t, conn, veg.ID, productSpec{name: "Tomato", price: "40.00", inStock: true})
	mustCreateReview(t, conn, product.ID, 5)
	mustCreateReview(t, conn, product.ID, 2)

	detail, agg, err := repo.GetProductDetail(ctx, product.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Category == nil || detail.Category.Name != "vegetables" {
		t.Fatal("expected preloaded category")
	}
	if agg.Count != 2 || agg.Average != 3.5 {
		t.Fatalf("unexpected aggregate %+v", agg)
	}
}

func TestListProductsCategoryNameFilter(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)

	vegetables := mustCreateCategory(t, conn, "Vegetables")
	fruits := mustCreateCategory(t, conn, "Fruits")
	mustCreateProduct(t, conn, vegetables.ID, productSpec{name: "Tomato", price: "40.00", inStock: true})
	mustCreateProduct(t, conn, fruits.ID, productSpec{name: "Mango", price: "120.00", inStock: true})

	records, total, err := repo.ListProducts(context.Background(), ListProductsInput{
		Filters: ProductFilters{Category: "vegetables"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(records) != 1 || records[0].Name != "Tomato" {
		t.Fatalf("expected case-insensitive category match, got %d records", len(records))
	}

	// "all" means no category filter.
	_, total, err = repo.ListProducts(context.Background(), ListProductsInput{
		Filters: ProductFilters{Category: "All"},
	})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected sentinel to skip the filter, got %d", total)
	}
}

func TestListProductsSearchMatchesCategoryName(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)

	vegetables := mustCreateCategory(t, conn, "Vegetables")
	fruits := mustCreateCategory(t, conn, "Fruits")
	mustCreateProduct(t, conn, vegetables.ID, productSpec{name: "Tomato", price: "40.00", inStock: true})
	mustCreateProduct(t, conn, fruits.ID, productSpec{name: "Mango", price: "120.00", inStock: true})

	records, _, err := repo.ListProducts(context.Background(), ListProductsInput{
		Filters: ProductFilters{Search: "fruit"},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Mango" {
		t.Fatalf("expected search to match category name, got %+v", records)
	}
}
