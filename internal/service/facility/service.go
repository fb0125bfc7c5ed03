package facility

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type FacilityServicer interface {
	Create(ctx context.Context, facility *model.Facility) error
	Get(ctx context.Context, id uuid.UUID) (*model.Facility, error)
	Update(ctx context.Context, facility *model.Facility) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID) ([]*model.Facility, error)
}

type Service struct {
	repo    repository.FacilityRepository
	orgRepo repository.OrganizationRepository
}

func NewService(repo repository.FacilityRepository, orgRepo repository.OrganizationRepository) *Service {
	return &Service{repo: repo, orgRepo: orgRepo}
}

func (s *Service) Create(ctx context.Context, facility *model.Facility) error {
	if facility.Name == "" {
		return fmt.Errorf("facility name is required")
	}
	if _, err := s.orgRepo.Get(ctx, facility.OrganizationID); err != nil {
		return fmt.Errorf("invalid organization: %w", err)
	}
	if err := s.repo.Create(ctx, facility); err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Facility, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, facility *model.Facility) error {
	if facility.Name == "" {
		return fmt.Errorf("facility name is required")
	}
	return s.repo.Update(ctx, facility)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, organizationID uuid.UUID) ([]*model.Facility, error) {
	return s.repo.List(ctx, organizationID)
}
