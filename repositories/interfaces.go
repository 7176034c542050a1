package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/equipment-portal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint is violated
	ErrDuplicate = errors.New("record already exists")

	// ErrMissingReference is returned when a foreign key points at a row that does not exist
	ErrMissingReference = errors.New("referenced record does not exist")
)

// UserRepository handles user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves users ordered by creation time, newest first
	List(ctx context.Context, limit, offset int) ([]*models.User, error)

	// Update updates a user's name, email and role
	Update(ctx context.Context, user *models.User) error

	// Delete deletes a user
	Delete(ctx context.Context, id uuid.UUID) error
}

// EquipmentRepository handles equipment data operations
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *models.Equipment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Equipment, error)
	List(ctx context.Context, limit, offset int) ([]*models.Equipment, error)
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*models.Equipment, error)
	Update(ctx context.Context, equipment *models.Equipment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PrincipalStore hands out short-lived sessions for principal lookups.
// Every session returned by Acquire must be released exactly once.
type PrincipalStore interface {
	Acquire(ctx context.Context) (PrincipalSession, error)
}

// PrincipalSession is a single store connection scoped to one lookup
type PrincipalSession interface {
	// FindPrincipal returns ErrNotFound when no user has the given id
	FindPrincipal(ctx context.Context, id uuid.UUID) (*models.User, error)

	// Release returns the connection to the pool
	Release() error
}

// Repositories groups all repository instances
type Repositories struct {
	Users      UserRepository
	Equipment  EquipmentRepository
	Principals PrincipalStore
}
