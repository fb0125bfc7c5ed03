package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type areaRepository struct {
	BaseRepository
}

func NewAreaRepository(base BaseRepository) repository.AreaRepository {
	return &areaRepository{base}
}

func (r *areaRepository) Create(ctx context.Context, area *model.Area) error {
	query := `
		INSERT INTO areas (
			id, name, department_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5)
	`

	area.ID = uuid.New()
	area.CreatedAt = time.Now()
	area.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		area.ID,
		area.Name,
		area.DepartmentID,
		area.CreatedAt,
		area.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create area: %w", err)
	}
	return nil
}

func (r *areaRepository) Get(ctx context.Context, id uuid.UUID) (*model.Area, error) {
	query := `
		SELECT * FROM areas
		WHERE id = $1 AND deleted_at IS NULL
	`
	var area model.Area
	if err := r.db.GetContext(ctx, &area, query, id); err != nil {
		return nil, fmt.Errorf("failed to get area: %w", err)
	}
	return &area, nil
}

func (r *areaRepository) Update(ctx context.Context, area *model.Area) error {
	query := `
		UPDATE areas
		SET name = $1, updated_at = $2
		WHERE id = $3
	`
	area.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		area.Name,
		area.UpdatedAt,
		area.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update area: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("area not found")
	}

	return nil
}

func (r *areaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM areas
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete area: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("area not found")
	}

	return nil
}

func (r *areaRepository) List(ctx context.Context, departmentID uuid.UUID) ([]*model.Area, error) {
	query := `
		SELECT * FROM areas
		WHERE department_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`
	var areas []*model.Area
	if err := r.db.SelectContext(ctx, &areas, query, departmentID); err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	return areas, nil
}
