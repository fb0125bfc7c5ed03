package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type departmentRepository struct {
	BaseRepository
}

func NewDepartmentRepository(base BaseRepository) repository.DepartmentRepository {
	return &departmentRepository{base}
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	query := `
		INSERT INTO departments (
			id, name, facility_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5)
	`

	department.ID = uuid.New()
	department.CreatedAt = time.Now()
	department.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		department.ID,
		department.Name,
		department.FacilityID,
		department.CreatedAt,
		department.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	query := `
		SELECT * FROM departments
		WHERE id = $1 AND deleted_at IS NULL
	`
	var department model.Department
	if err := r.db.GetContext(ctx, &department, query, id); err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &department, nil
}

func (r *departmentRepository) Update(ctx context.Context, department *model.Department) error {
	query := `
		UPDATE departments
		SET name = $1, updated_at = $2
		WHERE id = $3
	`
	department.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		department.Name,
		department.UpdatedAt,
		department.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("department not found")
	}

	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM departments
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("department not found")
	}

	return nil
}

func (r *departmentRepository) List(ctx context.Context, facilityID uuid.UUID) ([]*model.Department, error) {
	query := `
		SELECT * FROM departments
		WHERE facility_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`
	var departments []*model.Department
	if err := r.db.SelectContext(ctx, &departments, query, facilityID); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}
