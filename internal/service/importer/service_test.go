package importer

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixpgs/guardian-api/internal/csvio"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func idRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id)
}

func TestImportUnsupportedTableType(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewService()

	_, err := svc.Import(context.Background(), db, "widgets", []csvio.Row{{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported table type")
}

func TestImportOrganizationsUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService()

	mock.ExpectExec(`INSERT INTO organizations`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := svc.Import(context.Background(), db, TableOrganizations, []csvio.Row{
		{"organizationName": "Acme Logistics", "organizationCode": "ACME"},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Total)
	assert.Empty(t, result.Errors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportRowsFailIndependently(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService()
	orgID := uuid.New()

	// First row: organization lookup misses.
	mock.ExpectQuery(`SELECT id FROM organizations`).
		WithArgs("Nowhere Inc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	// Second row resolves and upserts.
	mock.ExpectQuery(`SELECT id FROM organizations`).
		WithArgs("Acme Logistics").
		WillReturnRows(idRows(orgID))
	mock.ExpectExec(`INSERT INTO facilities`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := svc.Import(context.Background(), db, TableFacilities, []csvio.Row{
		{"organizationName": "Nowhere Inc", "facilityName": "Ghost DC"},
		{"organizationName": "Acme Logistics", "facilityName": "Main DC"},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Row 2: Organization 'Nowhere Inc' not found", result.Errors[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportFacilityMissingName(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewService()

	result, err := svc.Import(context.Background(), db, TableFacilities, []csvio.Row{
		{"organizationName": "Acme Logistics"},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Row 2: facilityName is required", result.Errors[0])
}

func TestImportStandardResolvesHierarchy(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService()

	mock.ExpectQuery(`SELECT id FROM organizations`).
		WithArgs("Acme Logistics").
		WillReturnRows(idRows(uuid.New()))
	mock.ExpectQuery(`SELECT id FROM facilities`).
		WillReturnRows(idRows(uuid.New()))
	mock.ExpectQuery(`SELECT id FROM departments`).
		WillReturnRows(idRows(uuid.New()))
	mock.ExpectQuery(`SELECT id FROM areas`).
		WillReturnRows(idRows(uuid.New()))
	mock.ExpectExec(`INSERT INTO standards`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO uom_entries`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := svc.Import(context.Background(), db, TableStandards, []csvio.Row{
		{
			"organizationName": "Acme Logistics",
			"facilityName":     "Main DC",
			"departmentName":   "Outbound",
			"areaName":         "Pack Line 1",
			"standardName":     "Case Pack",
			"uom1_name":        "Case",
			"uom1_description": "Pack one case",
			"uom1_samValue":    "0.45",
		},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportStandardFailsOnMissingFacility(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService()

	mock.ExpectQuery(`SELECT id FROM organizations`).
		WillReturnRows(idRows(uuid.New()))
	mock.ExpectQuery(`SELECT id FROM facilities`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result, err := svc.Import(context.Background(), db, TableStandards, []csvio.Row{
		{
			"organizationName": "Acme Logistics",
			"facilityName":     "Ghost DC",
			"departmentName":   "Outbound",
			"areaName":         "Pack Line 1",
			"standardName":     "Case Pack",
		},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Row 2: Facility 'Ghost DC' not found in organization 'Acme Logistics'", result.Errors[0])
}

// Malformed embedded UOM JSON must not fail the row: the standard imports
// without entries.
func TestImportStandardToleratesBadUomJSON(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService()

	mock.ExpectQuery(`SELECT id FROM organizations`).
		WillReturnRows(idRows(uuid.New()))
	mock.ExpectQuery(`SELECT id FROM facilities`).
		WillReturnRows(idRows(uuid.New()))
	mock.ExpectQuery(`SELECT id FROM departments`).
		WillReturnRows(idRows(uuid.New()))
	mock.ExpectQuery(`SELECT id FROM areas`).
		WillReturnRows(idRows(uuid.New()))
	mock.ExpectExec(`INSERT INTO standards`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// no uom_entries insert expected

	result, err := svc.Import(context.Background(), db, TableStandards, []csvio.Row{
		{
			"organizationName": "Acme Logistics",
			"facilityName":     "Main DC",
			"departmentName":   "Outbound",
			"areaName":         "Pack Line 1",
			"standardName":     "Case Pack",
			"uomEntries":       `{"not": "a list"`,
		},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseJSONListFallsBackToDelimiters(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseJSONList(`["a","b"]`))
	assert.Equal(t, []string{"a", "b"}, parseJSONList("a; b"))
	assert.Nil(t, parseJSONList("  "))
}
