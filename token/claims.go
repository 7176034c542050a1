package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingClaim is returned when a required claim is missing
	ErrMissingClaim = errors.New("missing required claim")
)

// Claims is the payload carried by a portal token. Only the principal id is
// mandatory; issuers may add registered claims such as iat or iss.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId,omitempty"`
}

// PrincipalID returns the principal the token was issued for. The userId
// claim wins over sub when both are present.
func (c *Claims) PrincipalID() (uuid.UUID, error) {
	raw := c.UserID
	if raw == "" {
		raw = c.Subject
	}
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: userId", ErrMissingClaim)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid userId UUID: %w", err)
	}
	return id, nil
}
