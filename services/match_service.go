package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
	"github.com/rgomide/gerenciador-torneio-sub001/repositories"
	"github.com/rgomide/gerenciador-torneio-sub001/scoring"
)

// ParticipationInput — сырой ввод tagged union с пути записи; нормализуется
// резолвером до попадания в репозиторий.
type ParticipationInput struct {
	ParticipantType models.ParticipantType `json:"participant_type"`
	TeamID          *int                   `json:"team_id,omitempty"`
	PlayerID        *int                   `json:"player_id,omitempty"`
}

type MatchService interface {
	Create(ctx context.Context, match *models.Match) (*models.Match, error)
	// GetMatchDetails возвращает матч; при includeScores коллекция очков
	// загружается и поле total_scores становится списком (возможно пустым),
	// иначе остаётся null.
	GetMatchDetails(ctx context.Context, id int, includeScores bool) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	Update(ctx context.Context, id int, match *models.Match) (*models.Match, error)
	Finish(ctx context.Context, id int) (*models.Match, error)
	Delete(ctx context.Context, id int) error

	RegisterParticipant(ctx context.Context, matchID int, input ParticipationInput) (*models.MatchParticipation, error)
	ListParticipants(ctx context.Context, matchID int) ([]models.MatchParticipation, error)
	RemoveParticipant(ctx context.Context, participationID int) error
}

type matchService struct {
	repo              repositories.MatchRepository
	tournamentRepo    repositories.TournamentRepository
	participationRepo repositories.ParticipationRepository
	scoreRepo         repositories.ScoreRepository
	lookup            scoring.RefLookup
}

func NewMatchService(
	repo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	participationRepo repositories.ParticipationRepository,
	scoreRepo repositories.ScoreRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
) MatchService {
	return &matchService{
		repo:              repo,
		tournamentRepo:    tournamentRepo,
		participationRepo: participationRepo,
		scoreRepo:         scoreRepo,
		lookup:            participantLookup{teams: teamRepo, players: playerRepo},
	}
}

// participantLookup адаптирует репозитории под scoring.RefLookup.
type participantLookup struct {
	teams   repositories.TeamRepository
	players repositories.PlayerRepository
}

func (l participantLookup) TeamExists(ctx context.Context, id int) (bool, error) {
	return l.teams.Exists(ctx, id)
}

func (l participantLookup) PlayerExists(ctx context.Context, id int) (bool, error) {
	return l.players.Exists(ctx, id)
}

func (s *matchService) Create(ctx context.Context, match *models.Match) (*models.Match, error) {
	if match.Date.IsZero() {
		return nil, fmt.Errorf("%w: match date is required", ErrValidationFailed)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, match.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament %d: %w", match.TournamentID, err)
	}

	if err := s.repo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatchDetails(ctx context.Context, id int, includeScores bool) (*models.Match, error) {
	match, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}

	// Заявки и очки — независимые коллекции, грузим параллельно.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		participations, err := s.participationRepo.ListByMatch(gctx, id, true)
		if err != nil {
			return fmt.Errorf("failed to load participations for match %d: %w", id, err)
		}
		match.Participations = participations
		return nil
	})

	if includeScores {
		g.Go(func() error {
			scores, err := s.scoreRepo.ListByMatch(gctx, id, true)
			if err != nil {
				return fmt.Errorf("failed to load scores for match %d: %w", id, err)
			}
			match.Scores = scores
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if includeScores {
		// Итоги пересчитываются на каждое чтение, инкрементального состояния нет.
		match.TotalScores = scoring.AggregateScores(match.Scores)
	}
	return match, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	matches, err := s.repo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) Update(ctx context.Context, id int, input *models.Match) (*models.Match, error) {
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: match date is required", ErrValidationFailed)
	}

	match, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}

	match.Date = input.Date
	match.Location = input.Location
	match.Occurrences = input.Occurrences
	match.RoundNumber = input.RoundNumber
	if err := s.repo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) Finish(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	if match.Finished {
		return nil, ErrMatchAlreadyFinished
	}

	if err := s.repo.SetFinished(ctx, id, true); err != nil {
		return nil, fmt.Errorf("failed to finish match %d: %w", id, err)
	}
	match.Finished = true
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

func (s *matchService) RegisterParticipant(ctx context.Context, matchID int, input ParticipationInput) (*models.MatchParticipation, error) {
	if _, err := s.repo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to check match %d: %w", matchID, err)
	}

	// Резолвер отклоняет некорректный union и висячие ссылки до записи.
	ref, err := scoring.ResolveParticipant(ctx, s.lookup, input.ParticipantType, input.TeamID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	participation := &models.MatchParticipation{
		MatchID:         matchID,
		ParticipantType: ref.Kind,
	}
	switch ref.Kind {
	case models.ParticipantTeam:
		participation.TeamID = &ref.ID
	case models.ParticipantPlayer:
		participation.PlayerID = &ref.ID
	}

	if err := s.participationRepo.Create(ctx, participation); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipationConflict):
			return nil, ErrRegistrationConflict
		case errors.Is(err, repositories.ErrParticipationMatchInvalid):
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to register participant for match %d: %w", matchID, err)
	}
	return participation, nil
}

func (s *matchService) ListParticipants(ctx context.Context, matchID int) ([]models.MatchParticipation, error) {
	if _, err := s.repo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to check match %d: %w", matchID, err)
	}

	participations, err := s.participationRepo.ListByMatch(ctx, matchID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for match %d: %w", matchID, err)
	}
	return participations, nil
}

func (s *matchService) RemoveParticipant(ctx context.Context, participationID int) error {
	err := s.participationRepo.Delete(ctx, participationID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipationNotFound) {
			return ErrParticipationNotFound
		}
		return fmt.Errorf("failed to remove participation %d: %w", participationID, err)
	}
	return nil
}
