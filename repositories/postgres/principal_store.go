package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/upb/equipment-portal/models"
	"github.com/upb/equipment-portal/repositories"
	"go.uber.org/zap"
)

// PrincipalStore checks out a dedicated pool connection per identity lookup
type PrincipalStore struct {
	db     *DB
	logger *zap.Logger
}

// NewPrincipalStore creates a principal store backed by the pool
func NewPrincipalStore(db *DB, logger *zap.Logger) repositories.PrincipalStore {
	return &PrincipalStore{
		db:     db,
		logger: logger,
	}
}

// Acquire reserves a connection from the pool
func (s *PrincipalStore) Acquire(ctx context.Context) (repositories.PrincipalSession, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &principalSession{conn: conn}, nil
}

type principalSession struct {
	conn *sql.Conn
}

// FindPrincipal loads the fields identity resolution needs
func (s *principalSession) FindPrincipal(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, name, role FROM users WHERE id = $1`

	user := &models.User{}
	err := s.conn.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to find principal %s: %w", id, translateError(err))
	}
	return user, nil
}

// Release returns the connection to the pool
func (s *principalSession) Release() error {
	return s.conn.Close()
}
