package users

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

// CreateInput is the body accepted when an administrator creates a user
type CreateInput struct {
	Name  string          `json:"name" validate:"required,max=255"`
	Email string          `json:"email" validate:"required,email,max=255"`
	Role  models.UserRole `json:"role" validate:"omitempty,user_role"`
}

// UpdateInput carries the fields to change; nil fields are left untouched
type UpdateInput struct {
	Name  *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email *string          `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role  *models.UserRole `json:"role,omitempty" validate:"omitempty,user_role"`
}

// Service handles user management
type Service struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewService creates a new user Service
func NewService(users repositories.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
	}
}

// List returns a page of users. Out-of-range page sizes are clamped.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, services.FromRepository(err, nil, nil)
	}
	return users, nil
}

// Get returns a user the actor is allowed to see
func (s *Service) Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.User, error) {
	if !actor.CanAccessUser(id) {
		return nil, services.ErrForbidden
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, services.FromRepository(err, services.ErrUserNotFound, nil)
	}
	return user, nil
}

// Create adds a new user. The role defaults to RoleUser.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, services.ErrInvalidRole.WithDetail("role", string(role))
	}

	email := normalizeEmail(in.Email)
	if err := s.ensureEmailAvailable(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	user := models.NewUser(strings.TrimSpace(in.Name), email, role)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, services.FromRepository(err, nil, services.ErrDuplicateEmail)
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return user, nil
}

// Update applies in to the user. Non-admin actors may only rename themselves.
func (s *Service) Update(ctx context.Context, actor services.Actor, id uuid.UUID, in UpdateInput) (*models.User, error) {
	if !actor.CanAccessUser(id) {
		return nil, services.ErrForbidden
	}
	if !actor.IsAdmin() && (in.Email != nil || in.Role != nil) {
		return nil, services.ErrAdminOnlyField
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, services.FromRepository(err, services.ErrUserNotFound, nil)
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != user.Email {
			if err := s.ensureEmailAvailable(ctx, email, user.ID); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, services.ErrInvalidRole.WithDetail("role", string(*in.Role))
		}
		user.Role = *in.Role
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, services.FromRepository(err, services.ErrUserNotFound, services.ErrDuplicateEmail)
	}

	s.logger.Info("user updated",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actor.ID.String()))

	return user, nil
}

// Delete removes a user. Equipment assigned to them becomes unassigned.
func (s *Service) Delete(ctx context.Context, actor services.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return services.ErrForbidden
	}
	if actor.ID == id {
		return services.ErrSelfDelete
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return services.FromRepository(err, services.ErrUserNotFound, nil)
	}

	s.logger.Info("user deleted",
		zap.String("user_id", id.String()),
		zap.String("actor_id", actor.ID.String()))

	return nil
}

// ensureEmailAvailable rejects an email held by any user other than owner.
// The unique index still guards against a concurrent insert.
func (s *Service) ensureEmailAvailable(ctx context.Context, email string, owner uuid.UUID) error {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	case err != nil:
		return services.FromRepository(err, nil, nil)
	case existing.ID != owner:
		return services.ErrDuplicateEmail.WithDetail("email", email)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
