package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService guards the mutating question endpoints. It is disabled when no
// admin password hash is configured.
type AuthService struct {
	jwtSecret    []byte
	passwordHash []byte
	tokenTTL     time.Duration
}

func NewAuthService(jwtSecret, passwordHash string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		jwtSecret:    []byte(jwtSecret),
		passwordHash: []byte(passwordHash),
		tokenTTL:     tokenTTL,
	}
}

type TokenRequest struct {
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Enabled() bool {
	return len(s.passwordHash) > 0
}

// IssueToken exchanges the admin password for a signed token.
func (s *AuthService) IssueToken(req *TokenRequest) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, errors.New("authentication is not configured")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken checks signature, expiry and subject.
func (s *AuthService) ValidateToken(tokenString string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if !token.Valid || claims.Subject != adminSubject {
		return ErrInvalidCredentials
	}
	return nil
}
