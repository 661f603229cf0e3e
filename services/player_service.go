package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
	"github.com/rgomide/gerenciador-torneio-sub001/repositories"
)

type PlayerInput struct {
	Name   string `json:"name"`
	TeamID *int   `json:"team_id,omitempty"`
}

type PlayerService interface {
	Create(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	Update(ctx context.Context, id int, input PlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id int) error
}

type playerService struct {
	repo     repositories.PlayerRepository
	teamRepo repositories.TeamRepository
}

func NewPlayerService(repo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{repo: repo, teamRepo: teamRepo}
}

func (s *playerService) Create(ctx context.Context, input PlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if input.TeamID != nil {
		if _, err := s.teamRepo.GetByID(ctx, *input.TeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to check team %d: %w", *input.TeamID, err)
		}
	}

	player := &models.Player{Name: name, TeamID: input.TeamID}
	if err := s.repo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]*models.Player, error) {
	players, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	players, err := s.repo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, id int, input PlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	player, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}

	if input.TeamID != nil {
		if _, err := s.teamRepo.GetByID(ctx, *input.TeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to check team %d: %w", *input.TeamID, err)
		}
	}

	player.Name = name
	player.TeamID = input.TeamID
	if err := s.repo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerReferenced):
			return fmt.Errorf("%w: player %d is referenced by match records", ErrEntityReferenced, id)
		}
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	return nil
}
