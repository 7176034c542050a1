package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/upb/equipment-portal/repositories"
	"github.com/upb/equipment-portal/token"
	"go.uber.org/zap"
)

// TokenVerifier defines the interface for verifying signed tokens
type TokenVerifier interface {
	// Verify checks signature and expiry and returns the claims
	Verify(tokenString string) (*token.Claims, error)
}

// IdentityMiddleware resolves the caller's identity from the request credential.
// It never rejects a request; authorization is left to RequireAuth and RequireRole.
type IdentityMiddleware struct {
	verifier   TokenVerifier
	store      repositories.PrincipalStore
	cookieName string
	logger     *zap.Logger
}

// NewIdentityMiddleware creates a new IdentityMiddleware
func NewIdentityMiddleware(verifier TokenVerifier, store repositories.PrincipalStore, cookieName string, logger *zap.Logger) *IdentityMiddleware {
	return &IdentityMiddleware{
		verifier:   verifier,
		store:      store,
		cookieName: cookieName,
		logger:     logger,
	}
}

// ResolveIdentity attaches the resolved identity to the request context when
// the credential is valid and the principal exists. next is always called.
func (m *IdentityMiddleware) ResolveIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if identity := m.Resolve(ctx, ExtractToken(r, m.cookieName)); identity != nil {
			ctx = WithIdentity(ctx, identity)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Resolve turns a credential into an identity. Every failure yields nil.
// The store is only touched once the credential has been verified.
func (m *IdentityMiddleware) Resolve(ctx context.Context, tokenString string) *Identity {
	if tokenString == "" {
		return nil
	}

	requestID := GetRequestIDFromContext(ctx)

	claims, err := m.verifier.Verify(tokenString)
	if err != nil {
		m.logger.Warn("token verification failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil
	}

	principalID, err := claims.PrincipalID()
	if err != nil {
		m.logger.Warn("token carries no usable principal id",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil
	}

	session, err := m.store.Acquire(ctx)
	if err != nil {
		m.logger.Error("failed to acquire principal store session",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil
	}
	defer func() {
		if err := session.Release(); err != nil {
			m.logger.Warn("failed to release principal store session",
				zap.String("request_id", requestID),
				zap.Error(err))
		}
	}()

	user, err := session.FindPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			m.logger.Debug("principal not found",
				zap.String("request_id", requestID),
				zap.String("user_id", principalID.String()))
		} else {
			m.logger.Error("principal lookup failed",
				zap.String("request_id", requestID),
				zap.String("user_id", principalID.String()),
				zap.Error(err))
		}
		return nil
	}

	m.logger.Debug("identity resolved",
		zap.String("request_id", requestID),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &Identity{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
	}
}
