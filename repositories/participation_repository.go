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
	ErrParticipationNotFound = errors.New("match participation not found")
	// Участник уже заявлен на этот матч: уникальность (match, team) / (match, player).
	ErrParticipationConflict      = errors.New("participant already registered for this match")
	ErrParticipationMatchInvalid  = errors.New("participation match conflict or invalid")
	ErrParticipationTargetInvalid = errors.New("participation team or player conflict or invalid")
	// Нарушен check constraint tagged union: ровно один из team_id/player_id.
	ErrParticipationTypeViolation = errors.New("participation type violation: either team_id or player_id must be set, but not both")
)

type ParticipationRepository interface {
	Create(ctx context.Context, participation *models.MatchParticipation) error
	GetByID(ctx context.Context, id int) (*models.MatchParticipation, error)
	ListByMatch(ctx context.Context, matchID int, includeNested bool) ([]models.MatchParticipation, error)
	Delete(ctx context.Context, id int) error
}

type postgresParticipationRepository struct {
	db *sql.DB
}

func NewPostgresParticipationRepository(db *sql.DB) ParticipationRepository {
	return &postgresParticipationRepository{db: db}
}

func (r *postgresParticipationRepository) Create(ctx context.Context, participation *models.MatchParticipation) error {
	query := `
		INSERT INTO match_participations (match_id, participant_type, team_id, player_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		participation.MatchID,
		participation.ParticipantType,
		participation.TeamID,
		participation.PlayerID,
	).Scan(&participation.ID, &participation.CreatedAt, &participation.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrParticipationConflict
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "match_participations_match_id_fkey" {
					return ErrParticipationMatchInvalid
				}
				return ErrParticipationTargetInvalid
			case "23514": // check_violation
				if pqErr.Constraint == "chk_participation_type" {
					return ErrParticipationTypeViolation
				}
			}
		}
		return fmt.Errorf("failed to create match participation: %w", err)
	}
	return nil
}

func (r *postgresParticipationRepository) GetByID(ctx context.Context, id int) (*models.MatchParticipation, error) {
	query := `
		SELECT id, match_id, participant_type, team_id, player_id, created_at, updated_at
		FROM match_participations
		WHERE id = $1`

	p := &models.MatchParticipation{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.MatchID,
		&p.ParticipantType,
		&p.TeamID,
		&p.PlayerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipationNotFound
		}
		return nil, fmt.Errorf("failed to scan participation %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresParticipationRepository) ListByMatch(ctx context.Context, matchID int, includeNested bool) ([]models.MatchParticipation, error) {
	query := fmt.Sprintf(`
		SELECT
			p.id, p.match_id, p.participant_type, p.team_id, p.player_id, p.created_at, p.updated_at
			%s
		FROM match_participations p
		%s
		WHERE p.match_id = $1
		ORDER BY p.created_at ASC, p.id ASC`,
		selectNestedParticipantSQL(includeNested, "p"),
		joinNestedParticipantSQL(includeNested, "p"),
	)

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations for match %d: %w", matchID, err)
	}
	defer rows.Close()

	participations := make([]models.MatchParticipation, 0)
	for rows.Next() {
		var p models.MatchParticipation
		var t models.Team
		var pl models.Player

		scanDest := []interface{}{&p.ID, &p.MatchID, &p.ParticipantType, &p.TeamID, &p.PlayerID, &p.CreatedAt, &p.UpdatedAt}
		if includeNested {
			scanDest = append(scanDest, &t.ID, &t.Name, &pl.ID, &pl.Name)
		}

		if err := rows.Scan(scanDest...); err != nil {
			return nil, fmt.Errorf("failed to scan participation row: %w", err)
		}

		if includeNested {
			if p.TeamID != nil && t.ID > 0 {
				p.Team = &t
			}
			if p.PlayerID != nil && pl.ID > 0 {
				p.Player = &pl
			}
		}
		participations = append(participations, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participation rows: %w", err)
	}
	return participations, nil
}

func (r *postgresParticipationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM match_participations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participation %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrParticipationNotFound)
}

// selectNestedParticipantSQL и joinNestedParticipantSQL разделяются репозиториями
// заявок и очков: обе таблицы ссылаются на участника одинаковой парой FK.
func selectNestedParticipantSQL(includeNested bool, alias string) string {
	if !includeNested {
		return ""
	}
	return `,
			COALESCE(t.id, 0) AS team_db_id, COALESCE(t.name, '') AS team_name,
			COALESCE(pl.id, 0) AS player_db_id, COALESCE(pl.name, '') AS player_name`
}

func joinNestedParticipantSQL(includeNested bool, alias string) string {
	if !includeNested {
		return ""
	}
	return fmt.Sprintf(`
		LEFT JOIN teams t ON %[1]s.team_id = t.id
		LEFT JOIN players pl ON %[1]s.player_id = pl.id`, alias)
}
