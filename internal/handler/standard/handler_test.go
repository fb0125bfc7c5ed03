package standard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixpgs/guardian-api/internal/handler"
	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository/postgres"
)

type fakeStandardService struct {
	standard *model.Standard
	err      error
}

func (f *fakeStandardService) Create(_ context.Context, s *model.Standard) error {
	s.ID = uuid.New()
	s.Version = 1
	return f.err
}

func (f *fakeStandardService) Get(_ context.Context, _ uuid.UUID) (*model.Standard, error) {
	return f.standard, f.err
}

func (f *fakeStandardService) Update(_ context.Context, _ *model.Standard) error { return f.err }
func (f *fakeStandardService) Deactivate(_ context.Context, _ uuid.UUID) error   { return f.err }

func (f *fakeStandardService) List(_ context.Context, _ *model.StandardFilter) ([]*model.Standard, error) {
	return nil, f.err
}

func (f *fakeStandardService) ListVersions(_ context.Context, _ uuid.UUID) ([]*model.Standard, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*model.Standard{f.standard}, nil
}

func (f *fakeStandardService) CreateNewVersion(_ context.Context, _ uuid.UUID, _ *model.NewVersionInput) (*model.Standard, error) {
	return f.standard, f.err
}

func newTestRouter(svc *fakeStandardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateStandard(t *testing.T) {
	r := newTestRouter(&fakeStandardService{})

	w := doJSON(r, http.MethodPost, "/api/v1/standards", map[string]interface{}{
		"name":    "Case Pack",
		"area_id": uuid.New().String(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
}

func TestCreateStandardRequiresName(t *testing.T) {
	r := newTestRouter(&fakeStandardService{})

	w := doJSON(r, http.MethodPost, "/api/v1/standards", map[string]interface{}{
		"area_id": uuid.New().String(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStandardInvalidID(t *testing.T) {
	r := newTestRouter(&fakeStandardService{})

	w := doJSON(r, http.MethodGet, "/api/v1/standards/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateNewVersionNotFound(t *testing.T) {
	r := newTestRouter(&fakeStandardService{err: postgres.ErrStandardNotFound})

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/v1/standards/%s/versions", uuid.New()), map[string]interface{}{})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "original standard not found", resp.Message)
}

func TestCreateNewVersionSuccess(t *testing.T) {
	baseID := uuid.New()
	r := newTestRouter(&fakeStandardService{standard: &model.Standard{
		Name:             "Case Pack",
		Version:          2,
		BaseStandardID:   &baseID,
		IsCurrentVersion: true,
	}})

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/v1/standards/%s/versions", baseID), map[string]interface{}{
		"version_notes": "tightened SAM values",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string         `json:"status"`
		Data   model.Standard `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Version)
	assert.True(t, resp.Data.IsCurrentVersion)
}
