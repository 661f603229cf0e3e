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
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentEventInvalid = errors.New("tournament event conflict or invalid")
	ErrTournamentHasMatches   = errors.New("tournament still has matches")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (event_id, name, sport, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		tournament.EventID,
		tournament.Name,
		tournament.Sport,
		tournament.StartDate,
		tournament.EndDate,
	).Scan(&tournament.ID, &tournament.CreatedAt, &tournament.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTournamentEventInvalid
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, event_id, name, sport, start_date, end_date, created_at, updated_at
		FROM tournaments
		WHERE id = $1`

	tournament := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tournament.ID,
		&tournament.EventID,
		&tournament.Name,
		&tournament.Sport,
		&tournament.StartDate,
		&tournament.EndDate,
		&tournament.CreatedAt,
		&tournament.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (r *postgresTournamentRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.Tournament, error) {
	query := `
		SELECT id, event_id, name, sport, start_date, end_date, created_at, updated_at
		FROM tournaments
		WHERE event_id = $1
		ORDER BY start_date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments for event %d: %w", eventID, err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var tournament models.Tournament
		if err := rows.Scan(
			&tournament.ID,
			&tournament.EventID,
			&tournament.Name,
			&tournament.Sport,
			&tournament.StartDate,
			&tournament.EndDate,
			&tournament.CreatedAt,
			&tournament.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, &tournament)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $1, sport = $2, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		tournament.Name,
		tournament.Sport,
		tournament.StartDate,
		tournament.EndDate,
		tournament.ID,
	).Scan(&tournament.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to update tournament %d: %w", tournament.ID, err)
	}
	return nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTournamentHasMatches
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
