package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/Abhi-engg/farmstand-backend/pkg/config"
	"github.com/Abhi-engg/farmstand-backend/pkg/db"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/Abhi-engg/farmstand-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var registerDBSeq int

func newRegisterTestDB(t *testing.T) *db.Client {
	t.Helper()
	registerDBSeq++
	dsn := fmt.Sprintf("file:register_test_%d?mode=memory&cache=shared", registerDBSeq)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	ddl := `
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone TEXT,
    is_active BOOLEAN NOT NULL DEFAULT 1,
    last_login_at DATETIME,
    created_at DATETIME,
    updated_at DATETIME
);`
	if err := conn.Exec(ddl).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db.FromGorm(conn)
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestRegisterCreatesUser(t *testing.T) {
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             newRegisterTestDB(t),
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	user, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Anand",
		LastName:  "Patil",
		Email:     "  Anand@Example.com",
		Password:  "fresh-greens-1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.ID == uuid.Nil {
		t.Fatal("expected assigned user id")
	}
	if user.Email != "anand@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if !user.IsActive {
		t.Fatal("expected new user to be active")
	}
}

func TestRegisterStoresVerifiableHash(t *testing.T) {
	client := newRegisterTestDB(t)
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             client,
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if _, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Anand",
		LastName:  "Patil",
		Email:     "anand@example.com",
		Password:  "fresh-greens-1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	var hash string
	if err := client.DB().Raw("SELECT password_hash FROM users WHERE email = ?", "anand@example.com").Scan(&hash).Error; err != nil {
		t.Fatalf("read hash: %v", err)
	}
	ok, err := security.VerifyPassword("fresh-greens-1", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("stored hash does not verify")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             newRegisterTestDB(t),
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	req := RegisterRequest{
		FirstName: "Anand",
		LastName:  "Patil",
		Email:     "anand@example.com",
		Password:  "fresh-greens-1",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = svc.Register(context.Background(), req)
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestRegisterEmptyEmail(t *testing.T) {
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             newRegisterTestDB(t),
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterRequest{
		FirstName: "Anand",
		LastName:  "Patil",
		Email:     "   ",
		Password:  "fresh-greens-1",
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}
