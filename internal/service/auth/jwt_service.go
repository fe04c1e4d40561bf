package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and verifies stateless access tokens. A token stays
// valid until it expires; there is no revocation, and rotating the signing
// secret invalidates every outstanding token at once.
type JWTService interface {
	// GenerateToken creates a signed access token whose subject is userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks structure, signature, algorithm and expiry and
	// returns the token's claims. Returns ErrExpiredToken once now reaches
	// the expiry, and ErrInvalidToken for every other failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// TokenLifetime reports how long issued tokens stay valid.
	TokenLifetime() time.Duration
}

// Claims holds the verified contents of an access token.
type Claims struct {
	UserID    uuid.UUID `json:"uid,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
