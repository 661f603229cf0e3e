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

type InstitutionService interface {
	Create(ctx context.Context, name string) (*models.Institution, error)
	GetByID(ctx context.Context, id int, includeUnits bool) (*models.Institution, error)
	List(ctx context.Context) ([]*models.Institution, error)
	Update(ctx context.Context, id int, name string) (*models.Institution, error)
	UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Institution, error)
	Delete(ctx context.Context, id int) error
}

type institutionService struct {
	repo     repositories.InstitutionRepository
	unitRepo repositories.UnitRepository
	uploader storage.FileUploader
}

func NewInstitutionService(
	repo repositories.InstitutionRepository,
	unitRepo repositories.UnitRepository,
	uploader storage.FileUploader,
) InstitutionService {
	return &institutionService{
		repo:     repo,
		unitRepo: unitRepo,
		uploader: uploader,
	}
}

func (s *institutionService) Create(ctx context.Context, name string) (*models.Institution, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	institution := &models.Institution{Name: name}
	if err := s.repo.Create(ctx, institution); err != nil {
		if errors.Is(err, repositories.ErrInstitutionNameConflict) {
			return nil, ErrInstitutionNameConflict
		}
		return nil, fmt.Errorf("failed to create institution: %w", err)
	}
	return institution, nil
}

func (s *institutionService) GetByID(ctx context.Context, id int, includeUnits bool) (*models.Institution, error) {
	institution, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInstitutionNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to get institution %d: %w", id, err)
	}
	populateInstitutionLogoURL(institution, s.uploader)

	if includeUnits {
		units, err := s.unitRepo.ListByInstitution(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load units for institution %d: %w", id, err)
		}
		institution.Units = make([]models.Unit, 0, len(units))
		for _, unit := range units {
			institution.Units = append(institution.Units, *unit)
		}
	}
	return institution, nil
}

func (s *institutionService) List(ctx context.Context) ([]*models.Institution, error) {
	institutions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	for _, institution := range institutions {
		populateInstitutionLogoURL(institution, s.uploader)
	}
	return institutions, nil
}

func (s *institutionService) Update(ctx context.Context, id int, name string) (*models.Institution, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	institution, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInstitutionNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to get institution %d: %w", id, err)
	}

	institution.Name = name
	if err := s.repo.Update(ctx, institution); err != nil {
		if errors.Is(err, repositories.ErrInstitutionNameConflict) {
			return nil, ErrInstitutionNameConflict
		}
		return nil, fmt.Errorf("failed to update institution %d: %w", id, err)
	}
	populateInstitutionLogoURL(institution, s.uploader)
	return institution, nil
}

func (s *institutionService) UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Institution, error) {
	institution, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInstitutionNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to get institution %d: %w", id, err)
	}

	ext, err := getExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("institutions/%d/logo_%d%s", id, time.Now().Unix(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload institution logo: %w", err)
	}

	oldKey := institution.LogoKey
	if err := s.repo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to persist institution logo key: %w", err)
	}
	// Старый логотип чистим по принципу best-effort.
	if oldKey != nil && *oldKey != "" && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	institution.LogoKey = &result.Key
	populateInstitutionLogoURL(institution, s.uploader)
	return institution, nil
}

func (s *institutionService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInstitutionNotFound):
			return ErrInstitutionNotFound
		case errors.Is(err, repositories.ErrInstitutionHasUnits):
			return fmt.Errorf("%w: institution %d still has units", ErrEntityReferenced, id)
		}
		return fmt.Errorf("failed to delete institution %d: %w", id, err)
	}
	return nil
}
