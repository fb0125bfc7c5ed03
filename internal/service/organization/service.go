package organization

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type OrganizationServicer interface {
	Create(ctx context.Context, org *model.Organization) error
	Get(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	GetByCode(ctx context.Context, code string) (*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Organization, error)
}

type Service struct {
	repo repository.OrganizationRepository
}

func NewService(repo repository.OrganizationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, org *model.Organization) error {
	if org.Name == "" || org.Code == "" {
		return fmt.Errorf("organization name and code are required")
	}
	if err := s.repo.Create(ctx, org); err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*model.Organization, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) Update(ctx context.Context, org *model.Organization) error {
	if org.Name == "" || org.Code == "" {
		return fmt.Errorf("organization name and code are required")
	}
	return s.repo.Update(ctx, org)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Organization, error) {
	return s.repo.List(ctx)
}
