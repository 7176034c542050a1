package handlers

import (
	"net/http"

	"github.com/upb/equipment-portal/app"
	"github.com/upb/equipment-portal/services/users"
	"github.com/upb/equipment-portal/utils"
)

// ListUsersHandler lists users
func ListUsersHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r)

		list, err := deps.UserService.List(r.Context(), limit, offset)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, list)
	}
}

// GetCurrentUserHandler returns the stored profile of the authenticated user
func GetCurrentUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		user, err := deps.UserService.Get(r.Context(), actor, actor.ID)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, user)
	}
}

// GetUserHandler gets a specific user
func GetUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		user, err := deps.UserService.Get(r.Context(), actor, id)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, user)
	}
}

// CreateUserHandler creates a user
func CreateUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in users.CreateInput
		if !decodeAndValidate(w, r, &in, deps.Logger) {
			return
		}

		user, err := deps.UserService.Create(r.Context(), in)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteCreated(w, user)
	}
}

// UpdateUserHandler updates a user
func UpdateUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var in users.UpdateInput
		if !decodeAndValidate(w, r, &in, deps.Logger) {
			return
		}

		user, err := deps.UserService.Update(r.Context(), actor, id, in)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, user)
	}
}

// DeleteUserHandler deletes a user
func DeleteUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := deps.UserService.Delete(r.Context(), actor, id); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		utils.WriteNoContent(w)
	}
}
