package services

import (
	"github.com/google/uuid"
	"github.com/upb/equipment-portal/models"
)

// Actor is the caller on whose behalf a service operation runs
type Actor struct {
	ID   uuid.UUID
	Role models.UserRole
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanAccessUser reports whether the actor may read or edit the given user
func (a Actor) CanAccessUser(userID uuid.UUID) bool {
	return a.IsAdmin() || a.ID == userID
}
