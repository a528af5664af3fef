package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestAuthService(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return NewAuthService(testSecret, string(hash), ttl)
}

func TestAuthDisabledWithoutHash(t *testing.T) {
	svc := NewAuthService(testSecret, "", time.Hour)
	if svc.Enabled() {
		t.Fatal("expected auth to be disabled")
	}
	if _, _, err := svc.IssueToken(&TokenRequest{Password: "anything"}); err == nil {
		t.Error("expected IssueToken to fail when disabled")
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	token, expiresAt, err := svc.IssueToken(&TokenRequest{Password: "letmein"})
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expected expiry in the future, got %v", expiresAt)
	}
	if err := svc.ValidateToken(token); err != nil {
		t.Errorf("expected token to validate, got %v", err)
	}
}

func TestIssueTokenWrongPassword(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	_, _, err := svc.IssueToken(&TokenRequest{Password: "nope"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	sign := func(secret string, claims jwt.RegisteredClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("failed to sign: %v", err)
		}
		return s
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign("other", jwt.RegisteredClaims{Subject: adminSubject, ExpiresAt: future})},
		{"wrong subject", sign(testSecret, jwt.RegisteredClaims{Subject: "player", ExpiresAt: future})},
		{"expired", sign(testSecret, jwt.RegisteredClaims{
			Subject:   adminSubject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ValidateToken(tt.token); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
