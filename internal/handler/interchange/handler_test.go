package interchange

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixpgs/guardian-api/internal/csvio"
	"github.com/phoenixpgs/guardian-api/internal/handler"
	"github.com/phoenixpgs/guardian-api/internal/service/exporter"
	"github.com/phoenixpgs/guardian-api/internal/service/importer"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(sqlxDB, importer.NewService(), exporter.NewService(sqlxDB))
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, mock
}

func uploadCSV(t *testing.T, r *gin.Engine, tableType, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("tableType", tableType))
	part, err := w.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/csv", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestImportCSVRequiresTableType(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/csv", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportCSVRejectsHeaderOnlyFile(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := uploadCSV(t, r, importer.TableOrganizations, "organizationName,organizationCode\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportCSVStandardsValidationGate(t *testing.T) {
	r, _ := newTestRouter(t)

	content := strings.Join([]string{
		"organizationName,facilityName,departmentName,areaName,standardName,notes,uom1_name,uom1_description,uom1_samValue",
		"Acme,Main DC,Outbound,Pack Line 1,Case Pack,ok,Case,Pack one case,-2",
	}, "\n")

	rec := uploadCSV(t, r, importer.TableStandards, content)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handler.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CSV validation failed", resp.Message)
	assert.Contains(t, resp.Errors, "Row 2: uom1_samValue must be a positive number")
}

func TestImportCSVOrganizations(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectExec(`INSERT INTO organizations`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := uploadCSV(t, r, importer.TableOrganizations,
		"organizationName,organizationCode\nAcme Logistics,ACME\n")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string          `json:"status"`
		Data   importer.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Success)
	assert.Equal(t, 1, resp.Data.Imported)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportCSVOrganizations(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(`SELECT name, code`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "code", "logo"}).
			AddRow("Acme Logistics", "ACME", ""))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/csv?tableType=organizations", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "organizations-export-")
	assert.Contains(t, rec.Body.String(), "Acme Logistics,ACME")
}

func TestExportTemplate(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/template", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	rows, err := csvio.ParseContent(rec.Body.String())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, csvio.ValidateStandardRow(rows[0], 2).IsValid())
}
