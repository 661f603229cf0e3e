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
	ErrInstitutionNotFound     = errors.New("institution not found")
	ErrInstitutionNameConflict = errors.New("institution name already in use")
	ErrInstitutionHasUnits     = errors.New("institution still has units")
)

type InstitutionRepository interface {
	Create(ctx context.Context, institution *models.Institution) error
	GetByID(ctx context.Context, id int) (*models.Institution, error)
	List(ctx context.Context) ([]*models.Institution, error)
	Update(ctx context.Context, institution *models.Institution) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresInstitutionRepository struct {
	db *sql.DB
}

func NewPostgresInstitutionRepository(db *sql.DB) InstitutionRepository {
	return &postgresInstitutionRepository{db: db}
}

func (r *postgresInstitutionRepository) Create(ctx context.Context, institution *models.Institution) error {
	query := `
		INSERT INTO institutions (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, institution.Name).
		Scan(&institution.ID, &institution.CreatedAt, &institution.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrInstitutionNameConflict
		}
		return fmt.Errorf("failed to create institution: %w", err)
	}
	return nil
}

func (r *postgresInstitutionRepository) GetByID(ctx context.Context, id int) (*models.Institution, error) {
	query := `SELECT id, name, logo_key, created_at, updated_at FROM institutions WHERE id = $1`

	institution := &models.Institution{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&institution.ID,
		&institution.Name,
		&institution.LogoKey,
		&institution.CreatedAt,
		&institution.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to scan institution %d: %w", id, err)
	}
	return institution, nil
}

func (r *postgresInstitutionRepository) List(ctx context.Context) ([]*models.Institution, error) {
	query := `SELECT id, name, logo_key, created_at, updated_at FROM institutions ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	defer rows.Close()

	institutions := make([]*models.Institution, 0)
	for rows.Next() {
		var institution models.Institution
		if err := rows.Scan(
			&institution.ID,
			&institution.Name,
			&institution.LogoKey,
			&institution.CreatedAt,
			&institution.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan institution row: %w", err)
		}
		institutions = append(institutions, &institution)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating institution rows: %w", err)
	}
	return institutions, nil
}

func (r *postgresInstitutionRepository) Update(ctx context.Context, institution *models.Institution) error {
	query := `UPDATE institutions SET name = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, institution.Name, institution.ID).Scan(&institution.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInstitutionNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrInstitutionNameConflict
		}
		return fmt.Errorf("failed to update institution %d: %w", institution.ID, err)
	}
	return nil
}

func (r *postgresInstitutionRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE institutions SET logo_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update institution %d logo: %w", id, err)
	}
	return checkAffectedRows(result, ErrInstitutionNotFound)
}

func (r *postgresInstitutionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM institutions WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrInstitutionHasUnits
		}
		return fmt.Errorf("failed to delete institution %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrInstitutionNotFound)
}
