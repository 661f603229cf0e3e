package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
	"github.com/rgomide/gerenciador-torneio-sub001/repositories"
)

type TournamentInput struct {
	EventID   int       `json:"event_id"`
	Name      string    `json:"name"`
	Sport     string    `json:"sport"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type TournamentService interface {
	Create(ctx context.Context, input TournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int, includeMatches bool) (*models.Tournament, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Tournament, error)
	Update(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id int) error
}

type tournamentService struct {
	repo      repositories.TournamentRepository
	eventRepo repositories.EventRepository
	matchRepo repositories.MatchRepository
}

func NewTournamentService(
	repo repositories.TournamentRepository,
	eventRepo repositories.EventRepository,
	matchRepo repositories.MatchRepository,
) TournamentService {
	return &tournamentService{
		repo:      repo,
		eventRepo: eventRepo,
		matchRepo: matchRepo,
	}
}

func (s *tournamentService) Create(ctx context.Context, input TournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.Sport) == "" {
		return nil, fmt.Errorf("%w: name and sport are required", ErrValidationFailed)
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	if _, err := s.eventRepo.GetByID(ctx, input.EventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to check event %d: %w", input.EventID, err)
	}

	tournament := &models.Tournament{
		EventID:   input.EventID,
		Name:      name,
		Sport:     strings.TrimSpace(input.Sport),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.repo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentEventInvalid) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int, includeMatches bool) (*models.Tournament, error) {
	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	if includeMatches {
		matches, err := s.matchRepo.ListByTournament(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load matches for tournament %d: %w", id, err)
		}
		tournament.Matches = make([]models.Match, 0, len(matches))
		for _, match := range matches {
			tournament.Matches = append(tournament.Matches, *match)
		}
	}
	return tournament, nil
}

func (s *tournamentService) ListByEvent(ctx context.Context, eventID int) ([]*models.Tournament, error) {
	tournaments, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.Sport) == "" {
		return nil, fmt.Errorf("%w: name and sport are required", ErrValidationFailed)
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	tournament.Name = name
	tournament.Sport = strings.TrimSpace(input.Sport)
	tournament.StartDate = input.StartDate
	tournament.EndDate = input.EndDate
	if err := s.repo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentHasMatches):
			return fmt.Errorf("%w: tournament %d still has matches", ErrEntityReferenced, id)
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return nil
}
