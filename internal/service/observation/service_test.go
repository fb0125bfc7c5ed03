package observation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixpgs/guardian-api/internal/model"
	apperrors "github.com/phoenixpgs/guardian-api/pkg/errors"
)

type fakeObservationRepo struct {
	created *model.Observation
}

func (f *fakeObservationRepo) Create(_ context.Context, o *model.Observation) error {
	f.created = o
	return nil
}

func (f *fakeObservationRepo) Get(_ context.Context, _ uuid.UUID) (*model.Observation, error) {
	return &model.Observation{}, nil
}

func (f *fakeObservationRepo) Finalize(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeObservationRepo) List(_ context.Context, _ *model.ObservationFilter) ([]*model.Observation, error) {
	return nil, nil
}

type fakeStandardRepo struct{}

func (f *fakeStandardRepo) Create(_ context.Context, _ *model.Standard) error { return nil }

func (f *fakeStandardRepo) Get(_ context.Context, _ uuid.UUID) (*model.Standard, error) {
	return &model.Standard{Name: "Case Pack"}, nil
}

func (f *fakeStandardRepo) Update(_ context.Context, _ *model.Standard) error { return nil }
func (f *fakeStandardRepo) Deactivate(_ context.Context, _ uuid.UUID) error   { return nil }

func (f *fakeStandardRepo) List(_ context.Context, _ *model.StandardFilter) ([]*model.Standard, error) {
	return nil, nil
}

func (f *fakeStandardRepo) ListVersions(_ context.Context, _ uuid.UUID) ([]*model.Standard, error) {
	return nil, nil
}

func (f *fakeStandardRepo) CreateNewVersion(_ context.Context, _ uuid.UUID, _ *model.NewVersionInput) (*model.Standard, error) {
	return nil, nil
}

func validObservation() *model.Observation {
	start := time.Now().Add(-30 * time.Minute)
	return &model.Observation{
		UserID:       uuid.New(),
		StandardID:   uuid.New(),
		TimeObserved: 30,
		StartTime:    start,
		EndTime:      start.Add(30 * time.Minute),
		Data: []*model.ObservationData{
			{Uom: "Case", Quantity: 40, SamValue: 0.45},
			{Uom: "Tote", Quantity: 10, SamValue: 0.2},
		},
	}
}

func TestCreateDerivesMetrics(t *testing.T) {
	repo := &fakeObservationRepo{}
	svc := NewService(repo, &fakeStandardRepo{})

	obs := validObservation()
	require.NoError(t, svc.Create(context.Background(), obs))

	assert.InDelta(t, 20.0, obs.TotalSams, 0.0001)
	assert.InDelta(t, 66.6667, obs.ObservedPerformance, 0.001)
	assert.Same(t, obs, repo.created)
}

func TestCreateKeepsSuppliedMetrics(t *testing.T) {
	svc := NewService(&fakeObservationRepo{}, &fakeStandardRepo{})

	obs := validObservation()
	obs.TotalSams = 25
	obs.ObservedPerformance = 90

	require.NoError(t, svc.Create(context.Background(), obs))
	assert.Equal(t, 25.0, obs.TotalSams)
	assert.Equal(t, 90.0, obs.ObservedPerformance)
}

func TestCreateRejectsReversedTimes(t *testing.T) {
	svc := NewService(&fakeObservationRepo{}, &fakeStandardRepo{})

	obs := validObservation()
	obs.EndTime = obs.StartTime.Add(-time.Minute)

	err := svc.Create(context.Background(), obs)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestCreateRequiresIDs(t *testing.T) {
	svc := NewService(&fakeObservationRepo{}, &fakeStandardRepo{})

	obs := validObservation()
	obs.UserID = uuid.Nil

	err := svc.Create(context.Background(), obs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user id and standard id are required")
}
