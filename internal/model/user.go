package model

import (
	"time"

	"github.com/google/uuid"
)

// Goal period constants
const (
	GoalPeriodDay     = "day"
	GoalPeriodWeek    = "week"
	GoalPeriodMonth   = "month"
	GoalPeriodQuarter = "quarter"
	GoalPeriodYear    = "year"
)

// User represents an observer or administrator. Authentication lives with
// the hosted identity provider; users here carry profile, role and
// observation-goal data only.
type User struct {
	Base
	EmployeeID     string     `json:"employee_id" db:"employee_id"`
	Name           string     `json:"name" db:"name"`
	Email          *string    `json:"email,omitempty" db:"email"`
	Department     *string    `json:"department,omitempty" db:"department"`
	RoleID         *uuid.UUID `json:"role_id,omitempty" db:"role_id"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	ExternalSource *string    `json:"external_source,omitempty" db:"external_source"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty" db:"last_sync_at"`
	GoalDay        int        `json:"goal_day" db:"goal_day"`
	GoalWeek       int        `json:"goal_week" db:"goal_week"`
	GoalMonth      int        `json:"goal_month" db:"goal_month"`
	GoalQuarter    int        `json:"goal_quarter" db:"goal_quarter"`
	GoalYear       int        `json:"goal_year" db:"goal_year"`
}

// CreateUserRequest represents user creation parameters
type CreateUserRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Department *string `json:"department"`
	RoleID     *string `json:"role_id" binding:"omitempty,uuid"`
}

// UpdateUserRequest represents user update parameters
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Department *string `json:"department"`
	RoleID     *string `json:"role_id" binding:"omitempty,uuid"`
	IsActive   *bool   `json:"is_active"`
}

// GoalUpdate sets one user's observation-goal counters
type GoalUpdate struct {
	EmployeeID  string `json:"employee_id" binding:"required"`
	GoalDay     *int   `json:"goal_day"`
	GoalWeek    *int   `json:"goal_week"`
	GoalMonth   *int   `json:"goal_month"`
	GoalQuarter *int   `json:"goal_quarter"`
	GoalYear    *int   `json:"goal_year"`
}

// UserFilter represents user search parameters
type UserFilter struct {
	Department string `json:"department" form:"department"`
	ActiveOnly bool   `json:"active_only" form:"active_only"`
	SearchTerm string `json:"search_term" form:"search_term"`
}
