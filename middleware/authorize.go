package middleware

import (
	"net/http"

	"github.com/upb/equipment-portal/models"
	"github.com/upb/equipment-portal/utils"
	"go.uber.org/zap"
)

// Decision is the outcome of an authorization check
type Decision int

const (
	Authorized Decision = iota
	RejectedUnauthenticated
	RejectedForbidden
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case RejectedUnauthenticated:
		return "unauthenticated"
	case RejectedForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Authorize decides whether identity may proceed given the required roles.
// An empty role set admits any authenticated identity.
func Authorize(identity *Identity, roles ...models.UserRole) Decision {
	if identity == nil {
		return RejectedUnauthenticated
	}
	if len(roles) == 0 {
		return Authorized
	}
	for _, role := range roles {
		if identity.Role == role {
			return Authorized
		}
	}
	return RejectedForbidden
}

// Authorizer turns authorization decisions into HTTP responses
type Authorizer struct {
	logger *zap.Logger
}

// NewAuthorizer creates a new Authorizer
func NewAuthorizer(logger *zap.Logger) *Authorizer {
	return &Authorizer{logger: logger}
}

// RequireAuth rejects requests without a resolved identity
func (a *Authorizer) RequireAuth(next http.Handler) http.Handler {
	return a.RequireRole()(next)
}

// RequireRole rejects requests whose identity holds none of the given roles
func (a *Authorizer) RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			identity := GetIdentityFromContext(ctx)

			switch Authorize(identity, roles...) {
			case RejectedUnauthenticated:
				a.logger.Debug("request rejected: no identity",
					zap.String("request_id", GetRequestIDFromContext(ctx)),
					zap.String("path", r.URL.Path))
				_ = utils.WriteUnauthorized(w, "Authentication required")
				return
			case RejectedForbidden:
				a.logger.Warn("insufficient permissions",
					zap.String("request_id", GetRequestIDFromContext(ctx)),
					zap.String("user_id", identity.UserID.String()),
					zap.String("role", string(identity.Role)),
					zap.Any("required_roles", roles))
				_ = utils.WriteForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
