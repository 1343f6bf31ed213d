package users

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var userDBSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	userDBSeq++
	dsn := fmt.Sprintf("file:users_test_%d?mode=memory&cache=shared", userDBSeq)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	stmt := `CREATE TABLE users (
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
	)`
	if err := conn.Exec(stmt).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return conn
}

func seedUser(t *testing.T, repo *Repository, email string) uuid.UUID {
	t.Helper()
	created, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Asha",
		LastName:     "Patel",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return created.ID
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	id := seedUser(t, repo, "asha@example.com")

	first := "  Aasha "
	updated, err := repo.UpdateProfile(context.Background(), id, UpdateProfileDTO{FirstName: &first})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.FirstName != "Aasha" {
		t.Fatalf("expected trimmed first name, got %q", updated.FirstName)
	}
	if updated.LastName != "Patel" {
		t.Fatalf("last name should be untouched, got %q", updated.LastName)
	}
	if updated.Email != "asha@example.com" {
		t.Fatalf("email should never change via profile update, got %q", updated.Email)
	}
}

func TestUpdateProfileNoFieldsIsReadBack(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	id := seedUser(t, repo, "asha@example.com")

	updated, err := repo.UpdateProfile(context.Background(), id, UpdateProfileDTO{})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.ID != id {
		t.Fatalf("expected same user back, got %s", updated.ID)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	first := "Asha"
	_, err := repo.UpdateProfile(context.Background(), uuid.New(), UpdateProfileDTO{FirstName: &first})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
