package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type UserServicer interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error)
	UpdateGoals(ctx context.Context, updates []*model.GoalUpdate) *GoalsResult
}

// GoalsResult reports a bulk goal update, collecting per-entry failures
// the same way the CSV importer collects per-row errors.
type GoalsResult struct {
	Updated int      `json:"updated"`
	Total   int      `json:"total"`
	Errors  []string `json:"errors,omitempty"`
}

type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, user *model.User) error {
	if user.EmployeeID == "" || user.Name == "" {
		return fmt.Errorf("employee id and name are required")
	}
	user.IsActive = true
	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, user *model.User) error {
	if user.Name == "" {
		return fmt.Errorf("user name is required")
	}
	return s.repo.Update(ctx, user)
}

func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *Service) List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error) {
	return s.repo.List(ctx, filter)
}

// UpdateGoals applies observation-goal counters for a batch of users.
// Entries are processed independently; one bad employee id does not block
// the rest.
func (s *Service) UpdateGoals(ctx context.Context, updates []*model.GoalUpdate) *GoalsResult {
	result := &GoalsResult{Total: len(updates)}
	for _, update := range updates {
		if err := s.repo.UpdateGoals(ctx, update.EmployeeID, update); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Updated++
	}
	return result
}
