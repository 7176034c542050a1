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

const equipmentColumns = `id, name, category, serial_number, status, assigned_to, notes, created_at, updated_at`

// EquipmentRepository implements the repositories.EquipmentRepository interface
type EquipmentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewEquipmentRepository creates a new equipment repository
func NewEquipmentRepository(db *DB, logger *zap.Logger) repositories.EquipmentRepository {
	return &EquipmentRepository{
		db:     db,
		logger: logger,
	}
}

func scanEquipment(row rowScanner) (*models.Equipment, error) {
	eq := &models.Equipment{}
	var assignedTo uuid.NullUUID
	err := row.Scan(
		&eq.ID,
		&eq.Name,
		&eq.Category,
		&eq.SerialNumber,
		&eq.Status,
		&assignedTo,
		&eq.Notes,
		&eq.CreatedAt,
		&eq.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if assignedTo.Valid {
		id := assignedTo.UUID
		eq.AssignedTo = &id
	}
	return eq, nil
}

func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// Create creates a new equipment record
func (r *EquipmentRepository) Create(ctx context.Context, eq *models.Equipment) error {
	query := `
		INSERT INTO equipments (id, name, category, serial_number, status, assigned_to, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		eq.ID,
		eq.Name,
		eq.Category,
		eq.SerialNumber,
		eq.Status,
		nullableUUID(eq.AssignedTo),
		eq.Notes,
		eq.CreatedAt,
		eq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create equipment: %w", translateError(err))
	}

	r.logger.Debug("equipment created", zap.String("id", eq.ID.String()), zap.String("serial", eq.SerialNumber))
	return nil
}

// GetByID retrieves an equipment record by ID
func (r *EquipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipments WHERE id = $1`

	eq, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment %s: %w", id, translateError(err))
	}
	return eq, nil
}

// List retrieves equipment ordered by name
func (r *EquipmentRepository) List(ctx context.Context, limit, offset int) ([]*models.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipments ORDER BY name ASC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	return collectEquipment(rows)
}

// ListByAssignee retrieves everything currently assigned to a user
func (r *EquipmentRepository) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*models.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipments WHERE assigned_to = $1 ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment by assignee: %w", err)
	}
	return collectEquipment(rows)
}

func collectEquipment(rows *sql.Rows) ([]*models.Equipment, error) {
	defer rows.Close()

	items := make([]*models.Equipment, 0)
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		items = append(items, eq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating equipment rows: %w", err)
	}
	return items, nil
}

// Update updates an equipment record
func (r *EquipmentRepository) Update(ctx context.Context, eq *models.Equipment) error {
	query := `
		UPDATE equipments
		SET name = $2,
		    category = $3,
		    serial_number = $4,
		    status = $5,
		    assigned_to = $6,
		    notes = $7,
		    updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		eq.ID,
		eq.Name,
		eq.Category,
		eq.SerialNumber,
		eq.Status,
		nullableUUID(eq.AssignedTo),
		eq.Notes,
		eq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update equipment: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to update equipment %s: %w", eq.ID, repositories.ErrNotFound)
	}

	r.logger.Debug("equipment updated", zap.String("id", eq.ID.String()))
	return nil
}

// Delete deletes an equipment record
func (r *EquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to delete equipment %s: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("equipment deleted", zap.String("id", id.String()))
	return nil
}
