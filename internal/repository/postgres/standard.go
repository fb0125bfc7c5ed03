package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

// ErrStandardNotFound is returned when a versioning call references a
// standard that does not exist.
var ErrStandardNotFound = errors.New("original standard not found")

type standardRepository struct {
	BaseRepository
}

func NewStandardRepository(base BaseRepository) repository.StandardRepository {
	return &standardRepository{base}
}

func (r *standardRepository) Create(ctx context.Context, standard *model.Standard) error {
	standard.ID = uuid.New()
	standard.CreatedAt = time.Now()
	standard.UpdatedAt = time.Now()
	if standard.Version < 1 {
		standard.Version = 1
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertStandard(ctx, tx, standard); err != nil {
			return fmt.Errorf("failed to create standard: %w", err)
		}
		for _, entry := range standard.UomEntries {
			entry.StandardID = standard.ID
			if err := insertUomEntry(ctx, tx, entry); err != nil {
				return fmt.Errorf("failed to create uom entry: %w", err)
			}
		}
		return nil
	})
}

func insertStandard(ctx context.Context, tx *sqlx.Tx, s *model.Standard) error {
	query := `
		INSERT INTO standards (
			id, name, facility_id, department_id, area_id,
			version, base_standard_id, is_current_version, is_active,
			best_practices, process_opportunities, version_notes, created_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := tx.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.FacilityID,
		s.DepartmentID,
		s.AreaID,
		s.Version,
		s.BaseStandardID,
		s.IsCurrentVersion,
		s.IsActive,
		s.BestPractices,
		s.ProcessOpportunities,
		s.VersionNotes,
		s.CreatedBy,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func insertUomEntry(ctx context.Context, tx *sqlx.Tx, e *model.UomEntry) error {
	query := `
		INSERT INTO uom_entries (
			id, uom, description, sam_value, tags, standard_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()

	_, err := tx.ExecContext(ctx, query,
		e.ID,
		e.Uom,
		e.Description,
		e.SamValue,
		e.Tags,
		e.StandardID,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *standardRepository) Get(ctx context.Context, id uuid.UUID) (*model.Standard, error) {
	query := `
		SELECT * FROM standards
		WHERE id = $1 AND deleted_at IS NULL
	`
	var standard model.Standard
	if err := r.db.GetContext(ctx, &standard, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandardNotFound
		}
		return nil, fmt.Errorf("failed to get standard: %w", err)
	}

	entries, err := r.listUomEntries(ctx, id)
	if err != nil {
		return nil, err
	}
	standard.UomEntries = entries
	return &standard, nil
}

func (r *standardRepository) listUomEntries(ctx context.Context, standardID uuid.UUID) ([]*model.UomEntry, error) {
	query := `
		SELECT * FROM uom_entries
		WHERE standard_id = $1
		ORDER BY created_at, id
	`
	var entries []*model.UomEntry
	if err := r.db.SelectContext(ctx, &entries, query, standardID); err != nil {
		return nil, fmt.Errorf("failed to list uom entries: %w", err)
	}
	return entries, nil
}

func (r *standardRepository) Update(ctx context.Context, standard *model.Standard) error {
	query := `
		UPDATE standards
		SET name = $1, best_practices = $2, process_opportunities = $3,
			version_notes = $4, is_active = $5, updated_at = $6
		WHERE id = $7
	`
	standard.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		standard.Name,
		standard.BestPractices,
		standard.ProcessOpportunities,
		standard.VersionNotes,
		standard.IsActive,
		standard.UpdatedAt,
		standard.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update standard: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrStandardNotFound
	}

	return nil
}

func (r *standardRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE standards
		SET is_active = false, updated_at = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate standard: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrStandardNotFound
	}

	return nil
}

func (r *standardRepository) List(ctx context.Context, filter *model.StandardFilter) ([]*model.Standard, error) {
	query := `
		SELECT * FROM standards
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	if filter != nil && filter.AreaID != uuid.Nil {
		args = append(args, filter.AreaID)
		query += fmt.Sprintf(" AND area_id = $%d", len(args))
	}
	if filter != nil && filter.CurrentOnly {
		query += " AND is_current_version"
	}
	if filter != nil && filter.ActiveOnly {
		query += " AND is_active"
	}
	query += " ORDER BY name, version"

	var standards []*model.Standard
	if err := r.db.SelectContext(ctx, &standards, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list standards: %w", err)
	}
	return standards, nil
}

// ListVersions returns the whole version family of the given standard,
// oldest version first.
func (r *standardRepository) ListVersions(ctx context.Context, id uuid.UUID) ([]*model.Standard, error) {
	standard, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	baseID := standard.ID
	if standard.BaseStandardID != nil {
		baseID = *standard.BaseStandardID
	}

	query := `
		SELECT * FROM standards
		WHERE (id = $1 OR base_standard_id = $1) AND deleted_at IS NULL
		ORDER BY version
	`
	var versions []*model.Standard
	if err := r.db.SelectContext(ctx, &versions, query, baseID); err != nil {
		return nil, fmt.Errorf("failed to list standard versions: %w", err)
	}
	return versions, nil
}

// CreateNewVersion produces a new version of a standard inside one
// serializable transaction: it loads the referenced standard, resolves the
// family root, computes the next version number, clears the current flag
// across the family, then inserts the new row. Fields missing from input
// are copied from the original, UOM entries included.
func (r *standardRepository) CreateNewVersion(ctx context.Context, id uuid.UUID, input *model.NewVersionInput) (*model.Standard, error) {
	if input == nil {
		input = &model.NewVersionInput{}
	}

	var created *model.Standard
	err := r.WithSerializableTx(ctx, func(tx *sqlx.Tx) error {
		var original model.Standard
		err := tx.GetContext(ctx, &original, `SELECT * FROM standards WHERE id = $1 AND deleted_at IS NULL`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStandardNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load original standard: %w", err)
		}

		// Normalize any family member to the family root.
		baseID := original.ID
		if original.BaseStandardID != nil {
			baseID = *original.BaseStandardID
		}

		var maxVersion int
		err = tx.GetContext(ctx, &maxVersion,
			`SELECT COALESCE(MAX(version), 1) FROM standards WHERE id = $1 OR base_standard_id = $1`,
			baseID,
		)
		if err != nil {
			return fmt.Errorf("failed to compute next version: %w", err)
		}

		var originalEntries []*model.UomEntry
		err = tx.SelectContext(ctx, &originalEntries,
			`SELECT * FROM uom_entries WHERE standard_id = $1 ORDER BY created_at, id`,
			original.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to load original uom entries: %w", err)
		}

		// Set-based clear keeps the single-current invariant even if a
		// previous write left more than one row flagged.
		_, err = tx.ExecContext(ctx,
			`UPDATE standards SET is_current_version = false, updated_at = $1
			 WHERE (id = $2 OR base_standard_id = $2) AND is_current_version`,
			time.Now(), baseID,
		)
		if err != nil {
			return fmt.Errorf("failed to clear current version: %w", err)
		}

		next := &model.Standard{
			Name:                 original.Name,
			FacilityID:           original.FacilityID,
			DepartmentID:         original.DepartmentID,
			AreaID:               original.AreaID,
			Version:              maxVersion + 1,
			BaseStandardID:       &baseID,
			IsCurrentVersion:     true,
			IsActive:             true,
			BestPractices:        original.BestPractices,
			ProcessOpportunities: original.ProcessOpportunities,
			VersionNotes:         original.VersionNotes,
			CreatedBy:            original.CreatedBy,
		}
		applyVersionInput(next, input)

		next.ID = uuid.New()
		next.CreatedAt = time.Now()
		next.UpdatedAt = time.Now()
		if err := insertStandard(ctx, tx, next); err != nil {
			return fmt.Errorf("failed to insert new version: %w", err)
		}

		entries := input.UomEntries
		if entries == nil {
			entries = make([]*model.UomEntry, 0, len(originalEntries))
			for _, e := range originalEntries {
				entries = append(entries, &model.UomEntry{
					Uom:         e.Uom,
					Description: e.Description,
					SamValue:    e.SamValue,
					Tags:        e.Tags,
				})
			}
		}
		for _, entry := range entries {
			entry.StandardID = next.ID
			if err := insertUomEntry(ctx, tx, entry); err != nil {
				return fmt.Errorf("failed to insert uom entry: %w", err)
			}
		}

		next.UomEntries = entries
		created = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func applyVersionInput(s *model.Standard, input *model.NewVersionInput) {
	if input.Name != nil {
		s.Name = *input.Name
	}
	if input.FacilityID != nil {
		s.FacilityID = *input.FacilityID
	}
	if input.DepartmentID != nil {
		s.DepartmentID = *input.DepartmentID
	}
	if input.AreaID != nil {
		s.AreaID = *input.AreaID
	}
	if input.BestPractices != nil {
		s.BestPractices = *input.BestPractices
	}
	if input.ProcessOpportunities != nil {
		s.ProcessOpportunities = *input.ProcessOpportunities
	}
	if input.VersionNotes != nil {
		s.VersionNotes = input.VersionNotes
	}
	if input.CreatedBy != nil {
		s.CreatedBy = input.CreatedBy
	}
}
