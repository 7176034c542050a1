package handlers

import (
	"net/http"

	"github.com/upb/equipment-portal/app"
	"github.com/upb/equipment-portal/services/equipment"
	"github.com/upb/equipment-portal/utils"
)

// ListEquipmentHandler lists the inventory
func ListEquipmentHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r)

		items, err := deps.EquipmentService.List(r.Context(), limit, offset)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, items)
	}
}

// ListMyEquipmentHandler lists the equipment assigned to the caller
func ListMyEquipmentHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		items, err := deps.EquipmentService.ListAssignedTo(r.Context(), actor.ID)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, items)
	}
}

// GetEquipmentHandler gets a single item
func GetEquipmentHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		item, err := deps.EquipmentService.Get(r.Context(), id)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, item)
	}
}

// CreateEquipmentHandler registers a new item
func CreateEquipmentHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		var in equipment.CreateInput
		if !decodeAndValidate(w, r, &in, deps.Logger) {
			return
		}

		item, err := deps.EquipmentService.Create(r.Context(), actor, in)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteCreated(w, item)
	}
}

// UpdateEquipmentHandler updates an item
func UpdateEquipmentHandler(deps *app.Dependencies) http.HandlerFunc {
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

		var in equipment.UpdateInput
		if !decodeAndValidate(w, r, &in, deps.Logger) {
			return
		}

		item, err := deps.EquipmentService.Update(r.Context(), actor, id, in)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, item)
	}
}

// DeleteEquipmentHandler removes an item
func DeleteEquipmentHandler(deps *app.Dependencies) http.HandlerFunc {
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

		if err := deps.EquipmentService.Delete(r.Context(), actor, id); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		utils.WriteNoContent(w)
	}
}
