package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

func newMockStandardRepo(t *testing.T) (repository.StandardRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewStandardRepository(NewBaseRepository(sqlxDB)), mock
}

var standardColumns = []string{
	"id", "created_at", "updated_at", "deleted_at",
	"name", "facility_id", "department_id", "area_id",
	"version", "base_standard_id", "is_current_version", "is_active",
	"best_practices", "process_opportunities", "version_notes", "created_by",
}

var uomEntryColumns = []string{
	"id", "created_at", "updated_at", "deleted_at",
	"uom", "description", "sam_value", "tags", "standard_id",
}

func standardRow(id uuid.UUID, version int, baseID *uuid.UUID, current bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(standardColumns).
		AddRow(id, now, now, nil,
			"Case Pack", uuid.New(), uuid.New(), uuid.New(),
			version, baseID, current, true,
			[]byte(`["Scan before packing"]`), []byte(`[]`), nil, nil)
}

func TestCreateNewVersionIncrementsVersion(t *testing.T) {
	repo, mock := newMockStandardRepo(t)
	rootID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM standards WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs(rootID).
		WillReturnRows(standardRow(rootID, 1, nil, false))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(MAX(version), 1) FROM standards WHERE id = $1 OR base_standard_id = $1`)).
		WithArgs(rootID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM uom_entries WHERE standard_id = $1 ORDER BY created_at, id`)).
		WithArgs(rootID).
		WillReturnRows(sqlmock.NewRows(uomEntryColumns).
			AddRow(uuid.New(), time.Now(), time.Now(), nil,
				"Case", "Pack one case", 0.45, []byte(`["packing"]`), rootID))
	mock.ExpectExec(`UPDATE standards SET is_current_version = false`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO standards`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO uom_entries`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateNewVersion(context.Background(), rootID, &model.NewVersionInput{})
	require.NoError(t, err)

	assert.Equal(t, 4, created.Version)
	assert.True(t, created.IsCurrentVersion)
	assert.True(t, created.IsActive)
	require.NotNil(t, created.BaseStandardID)
	assert.Equal(t, rootID, *created.BaseStandardID)
	require.Len(t, created.UomEntries, 1)
	assert.Equal(t, "Case", created.UomEntries[0].Uom)
	assert.Equal(t, 0.45, created.UomEntries[0].SamValue)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNewVersionNormalizesFamilyRoot(t *testing.T) {
	repo, mock := newMockStandardRepo(t)
	rootID := uuid.New()
	memberID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM standards WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs(memberID).
		WillReturnRows(standardRow(memberID, 2, &rootID, true))
	// The version scan and flag clear must target the family root, not the
	// member the caller referenced.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(MAX(version), 1)`)).
		WithArgs(rootID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM uom_entries`)).
		WithArgs(memberID).
		WillReturnRows(sqlmock.NewRows(uomEntryColumns))
	mock.ExpectExec(`UPDATE standards SET is_current_version = false`).
		WithArgs(sqlmock.AnyArg(), rootID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO standards`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateNewVersion(context.Background(), memberID, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, created.Version)
	require.NotNil(t, created.BaseStandardID)
	assert.Equal(t, rootID, *created.BaseStandardID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNewVersionMissingStandard(t *testing.T) {
	repo, mock := newMockStandardRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM standards WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(standardColumns))
	mock.ExpectRollback()

	_, err := repo.CreateNewVersion(context.Background(), id, &model.NewVersionInput{})
	assert.ErrorIs(t, err, ErrStandardNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNewVersionAppliesOverrides(t *testing.T) {
	repo, mock := newMockStandardRepo(t)
	rootID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM standards WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs(rootID).
		WillReturnRows(standardRow(rootID, 1, nil, true))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(MAX(version), 1)`)).
		WithArgs(rootID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM uom_entries`)).
		WithArgs(rootID).
		WillReturnRows(sqlmock.NewRows(uomEntryColumns).
			AddRow(uuid.New(), time.Now(), time.Now(), nil,
				"Case", "Pack one case", 0.45, []byte(`[]`), rootID))
	mock.ExpectExec(`UPDATE standards SET is_current_version = false`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO standards`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO uom_entries`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	name := "Case Pack v2"
	notes := "tightened SAM values"
	input := &model.NewVersionInput{
		Name:         &name,
		VersionNotes: &notes,
		UomEntries: []*model.UomEntry{
			{Uom: "Case", Description: "Pack one case", SamValue: 0.4},
		},
	}

	created, err := repo.CreateNewVersion(context.Background(), rootID, input)
	require.NoError(t, err)

	assert.Equal(t, "Case Pack v2", created.Name)
	assert.Equal(t, 2, created.Version)
	require.NotNil(t, created.VersionNotes)
	assert.Equal(t, "tightened SAM values", *created.VersionNotes)
	// Caller-supplied entries replace the originals outright.
	require.Len(t, created.UomEntries, 1)
	assert.Equal(t, 0.4, created.UomEntries[0].SamValue)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStandardNotFound(t *testing.T) {
	repo, mock := newMockStandardRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM standards`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(standardColumns))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrStandardNotFound)
}

func TestDeactivateStandardNotFound(t *testing.T) {
	repo, mock := newMockStandardRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE standards`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Deactivate(context.Background(), id)
	assert.ErrorIs(t, err, ErrStandardNotFound)
}
