package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
	ErrWeakSecret    = errors.New("jwt secret must be at least 32 bytes for HS256")
)

// MinSecretLength is the minimum signing key size accepted for HS256.
const MinSecretLength = 32

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
}

// JWTService issues and verifies signed identity tokens.
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service. A missing or short signing key is a
// configuration error and must abort startup, so it is returned here rather
// than surfacing per-request.
func NewJWTService(config JWTConfig) (*JWTService, error) {
	if len(config.SecretKey) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &JWTService{config: config}, nil
}

// Claims defines JWT token content
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issue creates a signed token for the subject carrying the given role names.
// The validity window is [now, now+ttl].
func (s *JWTService) Issue(subject string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   subject,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to create access token: %w", err)
	}
	return signed, nil
}

// IssueFor issues a token with the configured default TTL.
func (s *JWTService) IssueFor(subject string, roles []string) (string, error) {
	return s.Issue(subject, roles, s.config.AccessTokenExp)
}

// Verify checks signature integrity and expiry. Malformed, badly signed and
// expired tokens all come back as errors; there is no revocation list, so a
// leaked token stays valid until its natural expiry.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", ErrInvalidFormat
	}
	return strings.TrimPrefix(authHeader, "Bearer "), nil
}
