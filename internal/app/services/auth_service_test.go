package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/examplatform/backend/internal/pkg/auth"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "0123456789abcdef0123456789abcdef",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	if err != nil {
		t.Fatalf("jwt service: %v", err)
	}
	userRepo := newFakeUserRepo()
	return NewAuthService(userRepo, jwtService, time.Hour), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "alex@example.com",
		Password: "password123",
		RoleType: "STUDENT",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.RoleType != models.RoleStudent {
		t.Fatalf("expected STUDENT, got %s", user.RoleType)
	}
	if user.Password == "password123" {
		t.Fatal("password must be stored hashed")
	}

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "alex@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login must issue a token")
	}
	if resp.Role != "STUDENT" {
		t.Fatalf("expected role STUDENT in response, got %s", resp.Role)
	}
	if resp.ExpiresIn != 3600 {
		t.Fatalf("expected expiresIn 3600, got %d", resp.ExpiresIn)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "evil@example.com",
		Password: "password123",
		RoleType: "ADMIN",
	})
	if !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	req := &dto.RegisterRequest{Email: "alex@example.com", Password: "password123", RoleType: "STUDENT"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _ = svc.Register(ctx, &dto.RegisterRequest{
		Email:    "alex@example.com",
		Password: "password123",
		RoleType: "STUDENT",
	})

	// Wrong password and unknown email must be indistinguishable
	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "alex@example.com", Password: "wrong"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, userRepo := newTestAuthService(t)
	ctx := context.Background()

	user, _ := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "alex@example.com",
		Password: "password123",
		RoleType: "STUDENT",
	})

	updated, err := svc.UpdateProfile(ctx, user, &dto.UpdateProfileRequest{FirstName: "Alex"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstName != "Alex" || updated.Email != "alex@example.com" {
		t.Fatalf("partial update went wrong: %+v", updated)
	}

	// Email collision with another account
	_, _ = svc.Register(ctx, &dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
		RoleType: "STUDENT",
	})
	fresh, _ := userRepo.GetByEmail(ctx, "alex@example.com")
	_, err = svc.UpdateProfile(ctx, fresh, &dto.UpdateProfileRequest{Email: "taken@example.com"})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}
