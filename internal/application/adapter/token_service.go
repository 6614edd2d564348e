package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the validated claims from an access token.
// Profile scopes record queries alongside the user ID.
type TokenClaims struct {
	UserID    uuid.UUID
	Profile   string
	ExpiresAt time.Time
}

// TokenService defines the interface for access-token handling. Issuance
// belongs to the external auth collaborator; GenerateAccessToken exists so
// tooling and tests can mint tokens against the shared secret.
type TokenService interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// GenerateAccessToken creates a signed access token for the given owner.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, profile string, ttl time.Duration) (string, error)
}
