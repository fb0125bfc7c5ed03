package standard

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixpgs/guardian-api/internal/model"
)

type fakeStandardRepo struct {
	created   *model.Standard
	versioned *model.NewVersionInput
}

func (f *fakeStandardRepo) Create(_ context.Context, s *model.Standard) error {
	f.created = s
	return nil
}

func (f *fakeStandardRepo) Get(_ context.Context, id uuid.UUID) (*model.Standard, error) {
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

func (f *fakeStandardRepo) CreateNewVersion(_ context.Context, _ uuid.UUID, input *model.NewVersionInput) (*model.Standard, error) {
	f.versioned = input
	return &model.Standard{Version: 2}, nil
}

type fakeAreaRepo struct {
	missing bool
}

func (f *fakeAreaRepo) Create(_ context.Context, _ *model.Area) error { return nil }

func (f *fakeAreaRepo) Get(_ context.Context, id uuid.UUID) (*model.Area, error) {
	if f.missing {
		return nil, fmt.Errorf("area not found")
	}
	return &model.Area{Name: "Pack Line 1"}, nil
}

func (f *fakeAreaRepo) Update(_ context.Context, _ *model.Area) error { return nil }
func (f *fakeAreaRepo) Delete(_ context.Context, _ uuid.UUID) error   { return nil }

func (f *fakeAreaRepo) List(_ context.Context, _ uuid.UUID) ([]*model.Area, error) {
	return nil, nil
}

func TestCreateForcesVersionFields(t *testing.T) {
	repo := &fakeStandardRepo{}
	svc := NewService(repo, &fakeAreaRepo{})

	baseID := uuid.New()
	standard := &model.Standard{
		Name:             "Case Pack",
		AreaID:           uuid.New(),
		Version:          7,
		BaseStandardID:   &baseID,
		IsCurrentVersion: false,
		IsActive:         false,
	}

	require.NoError(t, svc.Create(context.Background(), standard))
	require.NotNil(t, repo.created)
	assert.Equal(t, 1, repo.created.Version)
	assert.Nil(t, repo.created.BaseStandardID)
	assert.True(t, repo.created.IsCurrentVersion)
	assert.True(t, repo.created.IsActive)
}

func TestCreateRejectsInvalidUomEntries(t *testing.T) {
	svc := NewService(&fakeStandardRepo{}, &fakeAreaRepo{})

	standard := &model.Standard{
		Name:   "Case Pack",
		AreaID: uuid.New(),
		UomEntries: []*model.UomEntry{
			{Uom: "Case", SamValue: 0},
		},
	}

	err := svc.Create(context.Background(), standard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sam value must be positive")
}

func TestCreateRejectsMissingArea(t *testing.T) {
	svc := NewService(&fakeStandardRepo{}, &fakeAreaRepo{missing: true})

	err := svc.Create(context.Background(), &model.Standard{Name: "Case Pack", AreaID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid area")
}

func TestCreateNewVersionValidatesEntries(t *testing.T) {
	repo := &fakeStandardRepo{}
	svc := NewService(repo, &fakeAreaRepo{})

	_, err := svc.CreateNewVersion(context.Background(), uuid.New(), &model.NewVersionInput{
		UomEntries: []*model.UomEntry{{Uom: "", SamValue: 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uom name is required")
	assert.Nil(t, repo.versioned)
}

func TestCreateNewVersionDelegates(t *testing.T) {
	repo := &fakeStandardRepo{}
	svc := NewService(repo, &fakeAreaRepo{})

	created, err := svc.CreateNewVersion(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, created.Version)
}
