package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/upb/equipment-portal/middleware"
	"github.com/upb/equipment-portal/services"
	"github.com/upb/equipment-portal/utils"
	"go.uber.org/zap"
)

// actorFromRequest returns the caller resolved by the identity middleware
func actorFromRequest(r *http.Request) (services.Actor, bool) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		return services.Actor{}, false
	}
	return services.Actor{ID: identity.UserID, Role: identity.Role}, true
}

// pathID parses the {id} URL parameter, writing a 400 when it is not a UUID
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid ID", map[string]interface{}{"id": chi.URLParam(r, "id")})
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads limit and offset query parameters; invalid values read as 0
func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

// decodeAndValidate reads the body into dst and runs struct validation.
// It writes the error response itself and reports whether the caller may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, logger *zap.Logger) bool {
	if err := utils.DecodeBody(r, dst); err != nil {
		logger.Debug("failed to decode request body",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		_ = utils.WriteDecodeError(w, err)
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		HandleValidationError(w, err, logger)
		return false
	}
	return true
}
