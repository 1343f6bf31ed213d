package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Abhi-engg/farmstand-backend/pkg/migrate"
)

func TestValidateDirAcceptsBundledMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("bundled migrations failed validation: %v", err)
	}
}

func TestCartMigrationEnforcesSingleActiveCart(t *testing.T) {
	content := readMigration(t, "*_create_cart_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS carts",
		"CREATE TABLE IF NOT EXISTS cart_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS carts_user_active_key",
		"WHERE is_active",
		"CREATE UNIQUE INDEX IF NOT EXISTS cart_items_cart_product_key",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestReviewMigrationEnforcesOneReviewPerUser(t *testing.T) {
	content := readMigration(t, "*_create_reviews_favorites_tables.sql")

	checks := []string{
		"rating numeric(3,1) NOT NULL CHECK (rating BETWEEN 1 AND 5)",
		"CREATE UNIQUE INDEX IF NOT EXISTS reviews_product_user_key",
		"CREATE UNIQUE INDEX IF NOT EXISTS favorites_user_product_key",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
