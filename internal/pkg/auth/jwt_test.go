package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		SecretKey:      testSecret,
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{SecretKey: "short"})
	if !errors.Is(err, ErrWeakSecret) {
		t.Fatalf("expected ErrWeakSecret, got %v", err)
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.IssueFor("user@example.com", []string{"STUDENT"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user@example.com" {
		t.Fatalf("expected subject user@example.com, got %q", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "STUDENT" {
		t.Fatalf("expected roles [STUDENT], got %v", claims.Roles)
	}
	if claims.Issuer != "test" {
		t.Fatalf("expected issuer test, got %q", claims.Issuer)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Issue("user@example.com", []string{"STUDENT"}, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := newTestService(t)

	for _, token := range []string{"", "not.a.token", "abc"} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestVerifyWrongKey(t *testing.T) {
	svc := newTestService(t)
	other, _ := NewJWTService(JWTConfig{
		SecretKey:      "ffffffffffffffffffffffffffffffff",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})

	token, _ := other.IssueFor("user@example.com", []string{"STUDENT"})
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	got, err := ExtractBearerToken("Bearer abc123")
	if err != nil || got != "abc123" {
		t.Fatalf("expected abc123, got %q (%v)", got, err)
	}

	for _, header := range []string{"", "abc123", "bearer abc123", "Basic abc123"} {
		if _, err := ExtractBearerToken(header); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("header %q: expected ErrInvalidFormat, got %v", header, err)
		}
	}
}
