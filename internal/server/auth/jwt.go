// Package auth holds the credential primitives of the server: bcrypt
// password hashing and HS256 JWT issuing/verification.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// DefaultTokenValidity is the lifetime of an issued token.
const DefaultTokenValidity = 24 * time.Hour

// Subject is the identity carried by a token.
type Subject struct {
	UserID   string
	UserName string
}

// Claims are the JWT claims: the registered set plus the user identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	UserName string `json:"username"`
}

// TokenService mints and verifies HS256 tokens with a process-wide secret.
// The secret is read-only after construction.
type TokenService struct {
	secret   []byte
	validity time.Duration
	issuer   string
	now      func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithIssuer sets the iss claim and requires it on verification.
func WithIssuer(issuer string) TokenOption {
	return func(s *TokenService) { s.issuer = issuer }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService returns a TokenService. A non-positive validity falls back
// to DefaultTokenValidity.
func NewTokenService(secret []byte, validity time.Duration, opts ...TokenOption) *TokenService {
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	s := &TokenService{
		secret:   append([]byte(nil), secret...),
		validity: validity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for sub expiring after the configured validity.
func (s *TokenService) Issue(sub Subject) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
			ID:        uuid.NewString(),
		},
		UserID:   sub.UserID,
		UserName: sub.UserName,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature, algorithm, expiry and shape of tokenString.
// Every failure returns common.ErrInvalidToken so callers cannot tell
// which check failed.
func (s *TokenService) Verify(tokenString string) (Subject, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return Subject{}, common.ErrInvalidToken
	}

	if claims.UserName == "" {
		return Subject{}, common.ErrInvalidToken
	}

	return Subject{UserID: claims.UserID, UserName: claims.UserName}, nil
}
