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
	ErrScoreNotFound      = errors.New("match score not found")
	ErrScoreMatchInvalid  = errors.New("score match conflict or invalid")
	ErrScoreTargetInvalid = errors.New("score team or player conflict or invalid")
	ErrScoreTypeViolation = errors.New("score type violation: either team_id or player_id must be set, but not both")
)

type ScoreRepository interface {
	Create(ctx context.Context, score *models.MatchScore) error
	GetByID(ctx context.Context, id int) (*models.MatchScore, error)
	// ListByMatch возвращает очковые записи в порядке вставки — порядок первого
	// появления участника в этом списке определяет порядок итогов агрегации.
	ListByMatch(ctx context.Context, matchID int, includeNested bool) ([]models.MatchScore, error)
	Delete(ctx context.Context, id int) error
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) Create(ctx context.Context, score *models.MatchScore) error {
	query := `
		INSERT INTO match_scores (match_id, participant_type, team_id, player_id, score, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		score.MatchID,
		score.ParticipantType,
		score.TeamID,
		score.PlayerID,
		score.Score,
		score.Details,
	).Scan(&score.ID, &score.CreatedAt, &score.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23503":
				if pqErr.Constraint == "match_scores_match_id_fkey" {
					return ErrScoreMatchInvalid
				}
				return ErrScoreTargetInvalid
			case "23514":
				if pqErr.Constraint == "chk_score_participant_type" {
					return ErrScoreTypeViolation
				}
			}
		}
		return fmt.Errorf("failed to create match score: %w", err)
	}
	return nil
}

func (r *postgresScoreRepository) GetByID(ctx context.Context, id int) (*models.MatchScore, error) {
	query := `
		SELECT id, match_id, participant_type, team_id, player_id, score, details, created_at, updated_at
		FROM match_scores
		WHERE id = $1`

	score := &models.MatchScore{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&score.ID,
		&score.MatchID,
		&score.ParticipantType,
		&score.TeamID,
		&score.PlayerID,
		&score.Score,
		&score.Details,
		&score.CreatedAt,
		&score.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to scan score %d: %w", id, err)
	}
	return score, nil
}

func (r *postgresScoreRepository) ListByMatch(ctx context.Context, matchID int, includeNested bool) ([]models.MatchScore, error) {
	query := fmt.Sprintf(`
		SELECT
			s.id, s.match_id, s.participant_type, s.team_id, s.player_id, s.score, s.details, s.created_at, s.updated_at
			%s
		FROM match_scores s
		%s
		WHERE s.match_id = $1
		ORDER BY s.created_at ASC, s.id ASC`,
		selectNestedParticipantSQL(includeNested, "s"),
		joinNestedParticipantSQL(includeNested, "s"),
	)

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for match %d: %w", matchID, err)
	}
	defer rows.Close()

	scores := make([]models.MatchScore, 0)
	for rows.Next() {
		var s models.MatchScore
		var t models.Team
		var pl models.Player

		scanDest := []interface{}{
			&s.ID, &s.MatchID, &s.ParticipantType, &s.TeamID, &s.PlayerID,
			&s.Score, &s.Details, &s.CreatedAt, &s.UpdatedAt,
		}
		if includeNested {
			scanDest = append(scanDest, &t.ID, &t.Name, &pl.ID, &pl.Name)
		}

		if err := rows.Scan(scanDest...); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}

		if includeNested {
			if s.TeamID != nil && t.ID > 0 {
				s.Team = &t
			}
			if s.PlayerID != nil && pl.ID > 0 {
				s.Player = &pl
			}
		}
		scores = append(scores, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score rows: %w", err)
	}
	return scores, nil
}

func (r *postgresScoreRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM match_scores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete score %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrScoreNotFound)
}
