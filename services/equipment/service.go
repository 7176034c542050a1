package equipment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upb/equipment-portal/models"
	"github.com/upb/equipment-portal/repositories"
	"github.com/upb/equipment-portal/services"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// CreateInput is the body accepted when an administrator registers equipment
type CreateInput struct {
	Name         string                 `json:"name" validate:"required,max=255"`
	Category     string                 `json:"category" validate:"required,max=100"`
	SerialNumber string                 `json:"serial_number" validate:"required,max=100"`
	Status       models.EquipmentStatus `json:"status" validate:"omitempty,equipment_status"`
	AssignedTo   *uuid.UUID             `json:"assigned_to,omitempty"`
	Notes        string                 `json:"notes" validate:"max=2000"`
}

// UpdateInput carries the fields to change; nil fields are left untouched.
// Unassign clears the current assignee and wins over AssignedTo.
type UpdateInput struct {
	Name         *string                 `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Category     *string                 `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	SerialNumber *string                 `json:"serial_number,omitempty" validate:"omitempty,min=1,max=100"`
	Status       *models.EquipmentStatus `json:"status,omitempty" validate:"omitempty,equipment_status"`
	AssignedTo   *uuid.UUID              `json:"assigned_to,omitempty"`
	Unassign     bool                    `json:"unassign,omitempty"`
	Notes        *string                 `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Service handles the equipment inventory
type Service struct {
	equipment repositories.EquipmentRepository
	users     repositories.UserRepository
	logger    *zap.Logger
}

// NewService creates a new equipment Service
func NewService(equipment repositories.EquipmentRepository, users repositories.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		equipment: equipment,
		users:     users,
		logger:    logger,
	}
}

// List returns a page of equipment. Out-of-range page sizes are clamped.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Equipment, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.equipment.List(ctx, limit, offset)
	if err != nil {
		return nil, services.FromRepository(err, nil, nil)
	}
	return items, nil
}

// ListAssignedTo returns the equipment currently held by userID
func (s *Service) ListAssignedTo(ctx context.Context, userID uuid.UUID) ([]*models.Equipment, error) {
	items, err := s.equipment.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, services.FromRepository(err, nil, nil)
	}
	return items, nil
}

// Get returns a single item
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	item, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, services.FromRepository(err, services.ErrEquipmentNotFound, nil)
	}
	return item, nil
}

// Create registers a new item. Assigning it on creation checks it out.
func (s *Service) Create(ctx context.Context, actor services.Actor, in CreateInput) (*models.Equipment, error) {
	if !actor.IsAdmin() {
		return nil, services.ErrForbidden
	}

	item := models.NewEquipment(strings.TrimSpace(in.Name), strings.TrimSpace(in.Category), strings.TrimSpace(in.SerialNumber))
	item.Notes = in.Notes
	if in.Status != "" {
		item.Status = in.Status
	}

	if in.AssignedTo != nil {
		if err := s.ensureUserExists(ctx, *in.AssignedTo); err != nil {
			return nil, err
		}
		item.AssignedTo = in.AssignedTo
		if item.Status == models.EquipmentAvailable {
			item.Status = models.EquipmentCheckedOut
		}
	}

	if err := s.equipment.Create(ctx, item); err != nil {
		return nil, fromWrite(err, item, nil)
	}

	s.logger.Info("equipment created",
		zap.String("equipment_id", item.ID.String()),
		zap.String("actor_id", actor.ID.String()))

	return item, nil
}

// Update applies in to the item. Assignment changes move the status between
// available and checked_out unless an explicit status is given.
func (s *Service) Update(ctx context.Context, actor services.Actor, id uuid.UUID, in UpdateInput) (*models.Equipment, error) {
	if !actor.IsAdmin() {
		return nil, services.ErrForbidden
	}

	item, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, services.FromRepository(err, services.ErrEquipmentNotFound, nil)
	}

	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.SerialNumber != nil {
		item.SerialNumber = strings.TrimSpace(*in.SerialNumber)
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}

	switch {
	case in.Unassign:
		item.AssignedTo = nil
		if item.Status == models.EquipmentCheckedOut {
			item.Status = models.EquipmentAvailable
		}
	case in.AssignedTo != nil:
		if err := s.ensureUserExists(ctx, *in.AssignedTo); err != nil {
			return nil, err
		}
		item.AssignedTo = in.AssignedTo
		if item.Status == models.EquipmentAvailable {
			item.Status = models.EquipmentCheckedOut
		}
	}

	if in.Status != nil {
		item.Status = *in.Status
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.equipment.Update(ctx, item); err != nil {
		return nil, fromWrite(err, item, services.ErrEquipmentNotFound)
	}

	s.logger.Info("equipment updated",
		zap.String("equipment_id", item.ID.String()),
		zap.String("status", string(item.Status)),
		zap.String("actor_id", actor.ID.String()))

	return item, nil
}

// Delete removes an item from the inventory
func (s *Service) Delete(ctx context.Context, actor services.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return services.ErrForbidden
	}

	if err := s.equipment.Delete(ctx, id); err != nil {
		return services.FromRepository(err, services.ErrEquipmentNotFound, nil)
	}

	s.logger.Info("equipment deleted",
		zap.String("equipment_id", id.String()),
		zap.String("actor_id", actor.ID.String()))

	return nil
}

func (s *Service) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return services.FromRepository(err, services.ErrAssigneeNotFound.WithDetail("assigned_to", userID.String()), nil)
	}
	return nil
}

// fromWrite maps a failed insert or update. The assignee is the only foreign
// key on equipments, so a missing reference means it was deleted after the check.
func fromWrite(err error, item *models.Equipment, notFound *services.DomainError) error {
	if errors.Is(err, repositories.ErrMissingReference) && item.AssignedTo != nil {
		return services.ErrAssigneeNotFound.WithDetail("assigned_to", item.AssignedTo.String())
	}
	return services.FromRepository(err, notFound, services.ErrDuplicateSerial)
}
