package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgAuth "github.com/Abhi-engg/farmstand-backend/pkg/auth"
	"github.com/Abhi-engg/farmstand-backend/pkg/config"
	"github.com/Abhi-engg/farmstand-backend/pkg/db/models"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/Abhi-engg/farmstand-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	user          *models.User
	findErr       error
	lastLoginErr  error
	loginRecorded bool
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.lastLoginErr != nil {
		return s.lastLoginErr
	}
	s.loginRecorded = true
	return nil
}

type stubSession struct {
	token string
	err   error
}

func (s *stubSession) Generate(ctx context.Context, accessID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "farmstand",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestServiceLoginSuccess(t *testing.T) {
	password := "garden-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "meera@example.com",
		PasswordHash: mustHashPassword(t, password),
		FirstName:    "Meera",
		LastName:     "Iyer",
		IsActive:     true,
	}
	repo := &stubUserRepo{user: user}
	cfg := testJWTConfig()

	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: &stubSession{token: "refresh-token"},
		JWTConfig:      cfg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Meera@Example.com ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user claim %s, got %s", user.ID, claims.UserID)
	}
	if resp.RefreshToken != "refresh-token" {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatal("expected user payload in response")
	}
	if !repo.loginRecorded {
		t.Fatal("expected last login to be recorded")
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "meera@example.com",
		PasswordHash: mustHashPassword(t, "correct"),
		IsActive:     true,
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: &stubSession{token: "x"},
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "wrong"})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceLoginUnknownUser(t *testing.T) {
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: &stubSession{token: "x"},
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "pw"})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceLoginInactiveUser(t *testing.T) {
	password := "still-valid"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "gone@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     false,
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: &stubSession{token: "x"},
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceLoginSessionFailure(t *testing.T) {
	password := "garden-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "meera@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     true,
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: &stubSession{err: errors.New("redis down")},
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	assertCode(t, err, pkgerrors.CodeInternal)
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var coded *pkgerrors.Error
	if !errors.As(err, &coded) {
		t.Fatalf("expected coded error, got %v", err)
	}
	if coded.Code() != code {
		t.Fatalf("expected code %s, got %s", code, coded.Code())
	}
}
