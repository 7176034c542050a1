package middleware

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/upb/equipment-portal/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	// IdentityKey is the context key for the resolved identity
	IdentityKey contextKey = "identity"
)

// Identity is the request-scoped projection of a user that authorization
// and handlers work with. It is built per request and never cached.
type Identity struct {
	UserID uuid.UUID       `json:"userId"`
	Role   models.UserRole `json:"role"`
	Name   string          `json:"name"`
}

// GetRequestIDFromContext retrieves the request ID set by chi's RequestID middleware
func GetRequestIDFromContext(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// GetIdentityFromContext retrieves the resolved identity, or nil for anonymous requests
func GetIdentityFromContext(ctx context.Context) *Identity {
	if val := ctx.Value(IdentityKey); val != nil {
		if identity, ok := val.(*Identity); ok {
			return identity
		}
	}
	return nil
}

// WithIdentity adds a resolved identity to the context
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}
