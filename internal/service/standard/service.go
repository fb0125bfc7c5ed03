package standard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type StandardServicer interface {
	Create(ctx context.Context, standard *model.Standard) error
	Get(ctx context.Context, id uuid.UUID) (*model.Standard, error)
	Update(ctx context.Context, standard *model.Standard) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *model.StandardFilter) ([]*model.Standard, error)
	ListVersions(ctx context.Context, id uuid.UUID) ([]*model.Standard, error)
	CreateNewVersion(ctx context.Context, id uuid.UUID, input *model.NewVersionInput) (*model.Standard, error)
}

type Service struct {
	repo     repository.StandardRepository
	areaRepo repository.AreaRepository
}

func NewService(repo repository.StandardRepository, areaRepo repository.AreaRepository) *Service {
	return &Service{repo: repo, areaRepo: areaRepo}
}

func (s *Service) Create(ctx context.Context, standard *model.Standard) error {
	if err := validateStandard(standard); err != nil {
		return fmt.Errorf("invalid standard: %w", err)
	}
	if _, err := s.areaRepo.Get(ctx, standard.AreaID); err != nil {
		return fmt.Errorf("invalid area: %w", err)
	}

	standard.Version = 1
	standard.BaseStandardID = nil
	standard.IsCurrentVersion = true
	standard.IsActive = true

	if err := s.repo.Create(ctx, standard); err != nil {
		return fmt.Errorf("failed to create standard: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Standard, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, standard *model.Standard) error {
	if standard.Name == "" {
		return fmt.Errorf("standard name is required")
	}
	return s.repo.Update(ctx, standard)
}

func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *Service) List(ctx context.Context, filter *model.StandardFilter) ([]*model.Standard, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) ListVersions(ctx context.Context, id uuid.UUID) ([]*model.Standard, error) {
	return s.repo.ListVersions(ctx, id)
}

// CreateNewVersion produces a new version of the standard's family. The id
// may reference any member of the family; the repository normalizes it to
// the family root.
func (s *Service) CreateNewVersion(ctx context.Context, id uuid.UUID, input *model.NewVersionInput) (*model.Standard, error) {
	if input != nil {
		for _, entry := range input.UomEntries {
			if err := validateUomEntry(entry); err != nil {
				return nil, fmt.Errorf("invalid uom entry: %w", err)
			}
		}
	}
	return s.repo.CreateNewVersion(ctx, id, input)
}

func validateStandard(standard *model.Standard) error {
	if standard.Name == "" {
		return fmt.Errorf("standard name is required")
	}
	for _, entry := range standard.UomEntries {
		if err := validateUomEntry(entry); err != nil {
			return err
		}
	}
	return nil
}

func validateUomEntry(entry *model.UomEntry) error {
	if entry.Uom == "" {
		return fmt.Errorf("uom name is required")
	}
	if entry.SamValue <= 0 {
		return fmt.Errorf("sam value must be positive")
	}
	return nil
}
