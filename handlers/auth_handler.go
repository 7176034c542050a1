package handlers

import (
	"net/http"
	"time"

	"github.com/upb/equipment-portal/app"
	"github.com/upb/equipment-portal/middleware"
	"github.com/upb/equipment-portal/utils"
	"go.uber.org/zap"
)

// MeHandler returns the identity resolved for the current request
func MeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.GetIdentityFromContext(r.Context())
		if identity == nil {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}
		_ = utils.WriteOK(w, identity)
	}
}

// LogoutHandler expires the token cookie. Tokens themselves stay valid until
// they expire; issuance and revocation belong to the token issuer.
func LogoutHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     deps.Config.Auth.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   deps.Config.Auth.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})

		if identity := middleware.GetIdentityFromContext(r.Context()); identity != nil {
			deps.Logger.Info("user logged out",
				zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
				zap.String("user_id", identity.UserID.String()))
		}

		utils.WriteNoContent(w)
	}
}
