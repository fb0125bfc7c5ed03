package area

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type AreaServicer interface {
	Create(ctx context.Context, area *model.Area) error
	Get(ctx context.Context, id uuid.UUID) (*model.Area, error)
	Update(ctx context.Context, area *model.Area) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, departmentID uuid.UUID) ([]*model.Area, error)
}

type Service struct {
	repo           repository.AreaRepository
	departmentRepo repository.DepartmentRepository
}

func NewService(repo repository.AreaRepository, departmentRepo repository.DepartmentRepository) *Service {
	return &Service{repo: repo, departmentRepo: departmentRepo}
}

func (s *Service) Create(ctx context.Context, area *model.Area) error {
	if area.Name == "" {
		return fmt.Errorf("area name is required")
	}
	if _, err := s.departmentRepo.Get(ctx, area.DepartmentID); err != nil {
		return fmt.Errorf("invalid department: %w", err)
	}
	if err := s.repo.Create(ctx, area); err != nil {
		return fmt.Errorf("failed to create area: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Area, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, area *model.Area) error {
	if area.Name == "" {
		return fmt.Errorf("area name is required")
	}
	return s.repo.Update(ctx, area)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, departmentID uuid.UUID) ([]*model.Area, error) {
	return s.repo.List(ctx, departmentID)
}
