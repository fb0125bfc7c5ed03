package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type facilityRepository struct {
	BaseRepository
}

func NewFacilityRepository(base BaseRepository) repository.FacilityRepository {
	return &facilityRepository{base}
}

func (r *facilityRepository) Create(ctx context.Context, facility *model.Facility) error {
	query := `
		INSERT INTO facilities (
			id, name, ref, city, organization_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	facility.ID = uuid.New()
	facility.CreatedAt = time.Now()
	facility.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		facility.ID,
		facility.Name,
		facility.Ref,
		facility.City,
		facility.OrganizationID,
		facility.CreatedAt,
		facility.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}
	return nil
}

func (r *facilityRepository) Get(ctx context.Context, id uuid.UUID) (*model.Facility, error) {
	query := `
		SELECT * FROM facilities
		WHERE id = $1 AND deleted_at IS NULL
	`
	var facility model.Facility
	if err := r.db.GetContext(ctx, &facility, query, id); err != nil {
		return nil, fmt.Errorf("failed to get facility: %w", err)
	}
	return &facility, nil
}

func (r *facilityRepository) Update(ctx context.Context, facility *model.Facility) error {
	query := `
		UPDATE facilities
		SET name = $1, ref = $2, city = $3, updated_at = $4
		WHERE id = $5
	`
	facility.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		facility.Name,
		facility.Ref,
		facility.City,
		facility.UpdatedAt,
		facility.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update facility: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("facility not found")
	}

	return nil
}

func (r *facilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM facilities
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete facility: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("facility not found")
	}

	return nil
}

func (r *facilityRepository) List(ctx context.Context, organizationID uuid.UUID) ([]*model.Facility, error) {
	query := `
		SELECT * FROM facilities
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`
	var facilities []*model.Facility
	if err := r.db.SelectContext(ctx, &facilities, query, organizationID); err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	return facilities, nil
}
