package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
	"github.com/rgomide/gerenciador-torneio-sub001/repositories"
)

type UnitService interface {
	Create(ctx context.Context, institutionID int, name string) (*models.Unit, error)
	GetByID(ctx context.Context, id int) (*models.Unit, error)
	ListByInstitution(ctx context.Context, institutionID int) ([]*models.Unit, error)
	Update(ctx context.Context, id int, name string) (*models.Unit, error)
	Delete(ctx context.Context, id int) error
}

type unitService struct {
	repo            repositories.UnitRepository
	institutionRepo repositories.InstitutionRepository
}

func NewUnitService(repo repositories.UnitRepository, institutionRepo repositories.InstitutionRepository) UnitService {
	return &unitService{repo: repo, institutionRepo: institutionRepo}
}

func (s *unitService) Create(ctx context.Context, institutionID int, name string) (*models.Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	// Проверка существования заведения до вставки даёт внятную ошибку вместо голого FK.
	if _, err := s.institutionRepo.GetByID(ctx, institutionID); err != nil {
		if errors.Is(err, repositories.ErrInstitutionNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to check institution %d: %w", institutionID, err)
	}

	unit := &models.Unit{InstitutionID: institutionID, Name: name}
	if err := s.repo.Create(ctx, unit); err != nil {
		if errors.Is(err, repositories.ErrUnitInstitutionInvalid) {
			return nil, ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return unit, nil
}

func (s *unitService) GetByID(ctx context.Context, id int) (*models.Unit, error) {
	unit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to get unit %d: %w", id, err)
	}
	return unit, nil
}

func (s *unitService) ListByInstitution(ctx context.Context, institutionID int) ([]*models.Unit, error) {
	units, err := s.repo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}

func (s *unitService) Update(ctx context.Context, id int, name string) (*models.Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	unit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to get unit %d: %w", id, err)
	}

	unit.Name = name
	if err := s.repo.Update(ctx, unit); err != nil {
		if errors.Is(err, repositories.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to update unit %d: %w", id, err)
	}
	return unit, nil
}

func (s *unitService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUnitNotFound):
			return ErrUnitNotFound
		case errors.Is(err, repositories.ErrUnitHasDependents):
			return fmt.Errorf("%w: unit %d still has events or teams", ErrEntityReferenced, id)
		}
		return fmt.Errorf("failed to delete unit %d: %w", id, err)
	}
	return nil
}
