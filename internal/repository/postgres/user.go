package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, employee_id, name, email, department, role_id, is_active,
			external_source, last_sync_at,
			goal_day, goal_week, goal_month, goal_quarter, goal_year,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.EmployeeID,
		user.Name,
		user.Email,
		user.Department,
		user.RoleID,
		user.IsActive,
		user.ExternalSource,
		user.LastSyncAt,
		user.GoalDay,
		user.GoalWeek,
		user.GoalMonth,
		user.GoalQuarter,
		user.GoalYear,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT * FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*model.User, error) {
	query := `
		SELECT * FROM users
		WHERE employee_id = $1 AND deleted_at IS NULL
	`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, employeeID); err != nil {
		return nil, fmt.Errorf("failed to get user by employee id: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, department = $3, role_id = $4,
			is_active = $5, updated_at = $6
		WHERE id = $7
	`
	user.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.Department,
		user.RoleID,
		user.IsActive,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET is_active = false, updated_at = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

func (r *userRepository) List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error) {
	query := `
		SELECT * FROM users
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	if filter != nil && filter.Department != "" {
		args = append(args, filter.Department)
		query += fmt.Sprintf(" AND department = $%d", len(args))
	}
	if filter != nil && filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR employee_id ILIKE $%d)", len(args), len(args))
	}
	if filter != nil && filter.ActiveOnly {
		query += " AND is_active"
	}
	query += " ORDER BY name"

	var users []*model.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateGoals sets the observation-goal counters for one user, keyed by
// employee id. Nil counters keep their current value.
func (r *userRepository) UpdateGoals(ctx context.Context, employeeID string, goals *model.GoalUpdate) error {
	query := `
		UPDATE users
		SET goal_day = COALESCE($1, goal_day),
			goal_week = COALESCE($2, goal_week),
			goal_month = COALESCE($3, goal_month),
			goal_quarter = COALESCE($4, goal_quarter),
			goal_year = COALESCE($5, goal_year),
			updated_at = $6
		WHERE employee_id = $7 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query,
		goals.GoalDay,
		goals.GoalWeek,
		goals.GoalMonth,
		goals.GoalQuarter,
		goals.GoalYear,
		time.Now(),
		employeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goals: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %s not found", employeeID)
	}

	return nil
}
