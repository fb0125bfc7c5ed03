package department

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type DepartmentServicer interface {
	Create(ctx context.Context, department *model.Department) error
	Get(ctx context.Context, id uuid.UUID) (*model.Department, error)
	Update(ctx context.Context, department *model.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, facilityID uuid.UUID) ([]*model.Department, error)
}

type Service struct {
	repo         repository.DepartmentRepository
	facilityRepo repository.FacilityRepository
}

func NewService(repo repository.DepartmentRepository, facilityRepo repository.FacilityRepository) *Service {
	return &Service{repo: repo, facilityRepo: facilityRepo}
}

func (s *Service) Create(ctx context.Context, department *model.Department) error {
	if department.Name == "" {
		return fmt.Errorf("department name is required")
	}
	if _, err := s.facilityRepo.Get(ctx, department.FacilityID); err != nil {
		return fmt.Errorf("invalid facility: %w", err)
	}
	if err := s.repo.Create(ctx, department); err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, department *model.Department) error {
	if department.Name == "" {
		return fmt.Errorf("department name is required")
	}
	return s.repo.Update(ctx, department)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, facilityID uuid.UUID) ([]*model.Department, error) {
	return s.repo.List(ctx, facilityID)
}
