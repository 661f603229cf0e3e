package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
	"github.com/rgomide/gerenciador-torneio-sub001/repositories"
	"github.com/rgomide/gerenciador-torneio-sub001/scoring"
)

type ScoreInput struct {
	ParticipantType models.ParticipantType `json:"participant_type"`
	TeamID          *int                   `json:"team_id,omitempty"`
	PlayerID        *int                   `json:"player_id,omitempty"`
	Score           int                    `json:"score"`
	Details         *string                `json:"details,omitempty"`
}

// ScoreBroadcaster рассылает live-обновления подписчикам комнаты матча.
// Реализуется live.Hub.
type ScoreBroadcaster interface {
	BroadcastToMatch(matchID int, msgType string, payload interface{})
}

// ScoreUpdatePayload уходит в websocket-комнату матча после каждого
// принятого очкового события.
type ScoreUpdatePayload struct {
	MatchID     int                       `json:"match_id"`
	Score       *models.MatchScore        `json:"score"`
	TotalScores []models.ParticipantTotal `json:"total_scores"`
}

type ScoreService interface {
	// AddScore прогоняет запись через резолвер участника, сохраняет её и
	// рассылает пересчитанные итоги матча в live-комнату.
	AddScore(ctx context.Context, matchID int, input ScoreInput) (*models.MatchScore, error)
	ListByMatch(ctx context.Context, matchID int) ([]models.MatchScore, error)
	DeleteScore(ctx context.Context, scoreID int) error
}

type scoreService struct {
	repo      repositories.ScoreRepository
	matchRepo repositories.MatchRepository
	lookup    scoring.RefLookup
	hub       ScoreBroadcaster
}

func NewScoreService(
	repo repositories.ScoreRepository,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	hub ScoreBroadcaster,
) ScoreService {
	return &scoreService{
		repo:      repo,
		matchRepo: matchRepo,
		lookup:    participantLookup{teams: teamRepo, players: playerRepo},
		hub:       hub,
	}
}

func (s *scoreService) AddScore(ctx context.Context, matchID int, input ScoreInput) (*models.MatchScore, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to check match %d: %w", matchID, err)
	}
	if match.Finished {
		return nil, ErrScoreForFinishedMatch
	}

	// Инвариант tagged union проверяется здесь, на пути записи; агрегатор
	// дальше доверяет строкам.
	ref, err := scoring.ResolveParticipant(ctx, s.lookup, input.ParticipantType, input.TeamID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	score := &models.MatchScore{
		MatchID:         matchID,
		ParticipantType: ref.Kind,
		Score:           input.Score,
		Details:         input.Details,
	}
	switch ref.Kind {
	case models.ParticipantTeam:
		score.TeamID = &ref.ID
	case models.ParticipantPlayer:
		score.PlayerID = &ref.ID
	}

	if err := s.repo.Create(ctx, score); err != nil {
		if errors.Is(err, repositories.ErrScoreMatchInvalid) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to record score for match %d: %w", matchID, err)
	}

	s.broadcastTotals(ctx, matchID, score)
	return score, nil
}

// broadcastTotals пересчитывает итоги матча и рассылает их в комнату.
// Сбой рассылки не откатывает уже сохранённое очко.
func (s *scoreService) broadcastTotals(ctx context.Context, matchID int, score *models.MatchScore) {
	if s.hub == nil {
		return
	}
	scores, err := s.repo.ListByMatch(ctx, matchID, true)
	if err != nil {
		return
	}
	s.hub.BroadcastToMatch(matchID, "SCORE_ADDED", ScoreUpdatePayload{
		MatchID:     matchID,
		Score:       score,
		TotalScores: scoring.AggregateScores(scores),
	})
}

func (s *scoreService) ListByMatch(ctx context.Context, matchID int) ([]models.MatchScore, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to check match %d: %w", matchID, err)
	}

	scores, err := s.repo.ListByMatch(ctx, matchID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for match %d: %w", matchID, err)
	}
	return scores, nil
}

func (s *scoreService) DeleteScore(ctx context.Context, scoreID int) error {
	err := s.repo.Delete(ctx, scoreID)
	if err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return ErrScoreNotFound
		}
		return fmt.Errorf("failed to delete score %d: %w", scoreID, err)
	}
	return nil
}
