package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
)

var (
	ErrUnitNotFound           = errors.New("unit not found")
	ErrUnitInstitutionInvalid = errors.New("unit institution conflict or invalid")
	ErrUnitHasDependents      = errors.New("unit still has events or teams")
)

type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	GetByID(ctx context.Context, id int) (*models.Unit, error)
	ListByInstitution(ctx context.Context, institutionID int) ([]*models.Unit, error)
	Update(ctx context.Context, unit *models.Unit) error
	Delete(ctx context.Context, id int) error
}

type postgresUnitRepository struct {
	db *sql.DB
}

func NewPostgresUnitRepository(db *sql.DB) UnitRepository {
	return &postgresUnitRepository{db: db}
}

func (r *postgresUnitRepository) Create(ctx context.Context, unit *models.Unit) error {
	query := `
		INSERT INTO units (institution_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, unit.InstitutionID, unit.Name).
		Scan(&unit.ID, &unit.CreatedAt, &unit.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrUnitInstitutionInvalid
		}
		return fmt.Errorf("failed to create unit: %w", err)
	}
	return nil
}

func (r *postgresUnitRepository) GetByID(ctx context.Context, id int) (*models.Unit, error) {
	query := `SELECT id, institution_id, name, created_at, updated_at FROM units WHERE id = $1`

	unit := &models.Unit{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&unit.ID,
		&unit.InstitutionID,
		&unit.Name,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to scan unit %d: %w", id, err)
	}
	return unit, nil
}

func (r *postgresUnitRepository) ListByInstitution(ctx context.Context, institutionID int) ([]*models.Unit, error) {
	query := `
		SELECT id, institution_id, name, created_at, updated_at
		FROM units
		WHERE institution_id = $1
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, institutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list units for institution %d: %w", institutionID, err)
	}
	defer rows.Close()

	units := make([]*models.Unit, 0)
	for rows.Next() {
		var unit models.Unit
		if err := rows.Scan(&unit.ID, &unit.InstitutionID, &unit.Name, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unit row: %w", err)
		}
		units = append(units, &unit)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unit rows: %w", err)
	}
	return units, nil
}

func (r *postgresUnitRepository) Update(ctx context.Context, unit *models.Unit) error {
	query := `UPDATE units SET name = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, unit.Name, unit.ID).Scan(&unit.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnitNotFound
		}
		return fmt.Errorf("failed to update unit %d: %w", unit.ID, err)
	}
	return nil
}

func (r *postgresUnitRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrUnitHasDependents
		}
		return fmt.Errorf("failed to delete unit %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrUnitNotFound)
}
