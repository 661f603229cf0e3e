package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
	"github.com/rgomide/gerenciador-torneio-sub001/repositories"
	"github.com/rgomide/gerenciador-torneio-sub001/storage"
)

type TeamService interface {
	Create(ctx context.Context, unitID int, name string) (*models.Team, error)
	GetByID(ctx context.Context, id int, includePlayers bool) (*models.Team, error)
	ListByUnit(ctx context.Context, unitID int) ([]*models.Team, error)
	Update(ctx context.Context, id int, name string) (*models.Team, error)
	UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error)
	Delete(ctx context.Context, id int) error
}

type teamService struct {
	repo       repositories.TeamRepository
	unitRepo   repositories.UnitRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewTeamService(
	repo repositories.TeamRepository,
	unitRepo repositories.UnitRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		repo:       repo,
		unitRepo:   unitRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

func (s *teamService) Create(ctx context.Context, unitID int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.unitRepo.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, repositories.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to check unit %d: %w", unitID, err)
	}

	team := &models.Team{UnitID: unitID, Name: name}
	if err := s.repo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamUnitInvalid):
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int, includePlayers bool) (*models.Team, error) {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	populateTeamLogoURL(team, s.uploader)

	if includePlayers {
		players, err := s.playerRepo.ListByTeam(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load players for team %d: %w", id, err)
		}
		team.Players = make([]models.Player, 0, len(players))
		for _, player := range players {
			team.Players = append(team.Players, *player)
		}
	}
	return team, nil
}

func (s *teamService) ListByUnit(ctx context.Context, unitID int) ([]*models.Team, error) {
	teams, err := s.repo.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		populateTeamLogoURL(team, s.uploader)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, id int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	team.Name = name
	if err := s.repo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to update team %d: %w", id, err)
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	ext, err := getExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo_%d%s", id, time.Now().Unix(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	oldKey := team.LogoKey
	if err := s.repo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to persist team logo key: %w", err)
	}
	if oldKey != nil && *oldKey != "" && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.LogoKey = &result.Key
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamReferenced):
			return fmt.Errorf("%w: team %d is referenced by match records", ErrEntityReferenced, id)
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	return nil
}
