package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixpgs/guardian-api/internal/model"
)

type fakeUserRepo struct {
	goals map[string]*model.GoalUpdate
}

func (f *fakeUserRepo) Create(_ context.Context, _ *model.User) error { return nil }

func (f *fakeUserRepo) Get(_ context.Context, _ uuid.UUID) (*model.User, error) {
	return &model.User{}, nil
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, _ string) (*model.User, error) {
	return &model.User{}, nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *model.User) error { return nil }
func (f *fakeUserRepo) Deactivate(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _ *model.UserFilter) ([]*model.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateGoals(_ context.Context, employeeID string, goals *model.GoalUpdate) error {
	if employeeID == "missing" {
		return fmt.Errorf("user missing not found")
	}
	if f.goals == nil {
		f.goals = make(map[string]*model.GoalUpdate)
	}
	f.goals[employeeID] = goals
	return nil
}

func TestCreateRequiresEmployeeIDAndName(t *testing.T) {
	svc := NewService(&fakeUserRepo{})

	err := svc.Create(context.Background(), &model.User{Name: "Jordan"})
	require.Error(t, err)

	err = svc.Create(context.Background(), &model.User{EmployeeID: "E100"})
	require.Error(t, err)
}

func TestCreateActivatesUser(t *testing.T) {
	svc := NewService(&fakeUserRepo{})

	user := &model.User{EmployeeID: "E100", Name: "Jordan"}
	require.NoError(t, svc.Create(context.Background(), user))
	assert.True(t, user.IsActive)
}

func TestUpdateGoalsProcessesEntriesIndependently(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewService(repo)

	day := 10
	result := svc.UpdateGoals(context.Background(), []*model.GoalUpdate{
		{EmployeeID: "E100", GoalDay: &day},
		{EmployeeID: "missing"},
		{EmployeeID: "E200"},
	})

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Updated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "missing")
	assert.Contains(t, repo.goals, "E100")
	assert.Contains(t, repo.goals, "E200")
}
