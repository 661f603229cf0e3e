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

type EventInput struct {
	UnitID    int       `json:"unit_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type EventService interface {
	Create(ctx context.Context, input EventInput) (*models.Event, error)
	GetByID(ctx context.Context, id int, includeTournaments bool) (*models.Event, error)
	ListByUnit(ctx context.Context, unitID int) ([]*models.Event, error)
	Update(ctx context.Context, id int, input EventInput) (*models.Event, error)
	Delete(ctx context.Context, id int) error
}

type eventService struct {
	repo           repositories.EventRepository
	unitRepo       repositories.UnitRepository
	tournamentRepo repositories.TournamentRepository
}

func NewEventService(
	repo repositories.EventRepository,
	unitRepo repositories.UnitRepository,
	tournamentRepo repositories.TournamentRepository,
) EventService {
	return &eventService{
		repo:           repo,
		unitRepo:       unitRepo,
		tournamentRepo: tournamentRepo,
	}
}

func (s *eventService) Create(ctx context.Context, input EventInput) (*models.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	if _, err := s.unitRepo.GetByID(ctx, input.UnitID); err != nil {
		if errors.Is(err, repositories.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to check unit %d: %w", input.UnitID, err)
	}

	event := &models.Event{
		UnitID:    input.UnitID,
		Name:      name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrEventUnitInvalid) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id int, includeTournaments bool) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}

	if includeTournaments {
		tournaments, err := s.tournamentRepo.ListByEvent(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load tournaments for event %d: %w", id, err)
		}
		event.Tournaments = make([]models.Tournament, 0, len(tournaments))
		for _, tournament := range tournaments {
			event.Tournaments = append(event.Tournaments, *tournament)
		}
	}
	return event, nil
}

func (s *eventService) ListByUnit(ctx context.Context, unitID int) ([]*models.Event, error) {
	events, err := s.repo.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, id int, input EventInput) (*models.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}

	event.Name = name
	event.StartDate = input.StartDate
	event.EndDate = input.EndDate
	if err := s.repo.Update(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event %d: %w", id, err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEventNotFound):
			return ErrEventNotFound
		case errors.Is(err, repositories.ErrEventHasTournaments):
			return fmt.Errorf("%w: event %d still has tournaments", ErrEntityReferenced, id)
		}
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	return nil
}
