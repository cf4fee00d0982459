// Package auth issues and verifies the signed access tokens handed out by
// POST /jwt and checked by the token middleware.
package auth

import (
	"context"
	"time"
)

// Subject identifies who a token is issued for.
type Subject struct {
	Email string
	Name  string
}

// TokenService defines operations for managing access tokens.
type TokenService interface {
	// GenerateToken creates a signed access token for subject.
	// It returns the token and the instant it expires.
	GenerateToken(ctx context.Context, subject Subject) (string, time.Time, error)

	// ValidateToken verifies tokenString and extracts its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the verified contents of an access token.
type Claims struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}
