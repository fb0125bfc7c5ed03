package observation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
	apperrors "github.com/phoenixpgs/guardian-api/pkg/errors"
)

type ObservationServicer interface {
	Create(ctx context.Context, observation *model.Observation) error
	Get(ctx context.Context, id uuid.UUID) (*model.Observation, error)
	Finalize(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *model.ObservationFilter) ([]*model.Observation, error)
}

type Service struct {
	repo         repository.ObservationRepository
	standardRepo repository.StandardRepository
}

func NewService(repo repository.ObservationRepository, standardRepo repository.StandardRepository) *Service {
	return &Service{repo: repo, standardRepo: standardRepo}
}

func (s *Service) Create(ctx context.Context, observation *model.Observation) error {
	if observation.UserID == uuid.Nil || observation.StandardID == uuid.Nil {
		return apperrors.BadRequest("user id and standard id are required", nil)
	}
	if observation.EndTime.Before(observation.StartTime) {
		return apperrors.BadRequest("end time must not precede start time", nil)
	}
	if _, err := s.standardRepo.Get(ctx, observation.StandardID); err != nil {
		return apperrors.BadRequest("invalid standard", err)
	}

	// Derive total SAMs from the per-UOM breakdown when not supplied.
	if observation.TotalSams == 0 {
		for _, d := range observation.Data {
			observation.TotalSams += d.Quantity * d.SamValue
		}
	}
	if observation.ObservedPerformance == 0 && observation.TimeObserved > 0 {
		observation.ObservedPerformance = observation.TotalSams / observation.TimeObserved * 100
	}

	if err := s.repo.Create(ctx, observation); err != nil {
		return fmt.Errorf("failed to create observation: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Observation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Finalize(ctx context.Context, id uuid.UUID) error {
	return s.repo.Finalize(ctx, id)
}

func (s *Service) List(ctx context.Context, filter *model.ObservationFilter) ([]*model.Observation, error) {
	return s.repo.List(ctx, filter)
}
