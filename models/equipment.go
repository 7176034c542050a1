package models

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentStatus tracks where a piece of equipment currently is
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "available"
	EquipmentCheckedOut  EquipmentStatus = "checked_out"
	EquipmentMaintenance EquipmentStatus = "maintenance"
	EquipmentRetired     EquipmentStatus = "retired"
)

// Equipment is an inventory item that can be assigned to a user
type Equipment struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Category     string          `json:"category" db:"category"`
	SerialNumber string          `json:"serial_number" db:"serial_number"`
	Status       EquipmentStatus `json:"status" db:"status"`
	AssignedTo   *uuid.UUID      `json:"assigned_to,omitempty" db:"assigned_to"`
	Notes        string          `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// NewEquipment creates an available item with no assignee
func NewEquipment(name, category, serialNumber string) *Equipment {
	now := time.Now().UTC()
	return &Equipment{
		ID:           uuid.New(),
		Name:         name,
		Category:     category,
		SerialNumber: serialNumber,
		Status:       EquipmentAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAssigned reports whether the item is held by someone
func (e *Equipment) IsAssigned() bool {
	return e.AssignedTo != nil
}

// Valid reports whether s is one of the known statuses
func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentCheckedOut, EquipmentMaintenance, EquipmentRetired:
		return true
	}
	return false
}
