package model

import (
	"github.com/google/uuid"
)

type Role struct {
	Base
	Name         string `json:"name" db:"name" binding:"required"`
	Description  string `json:"description" db:"description"`
	IsSystemRole bool   `json:"is_system_role" db:"is_system_role"`
}

// Permission grants one action on one module, e.g. {standards, update}
type Permission struct {
	Base
	Module      string `json:"module" db:"module"`
	Action      string `json:"action" db:"action"`
	Description string `json:"description" db:"description"`
}

type RolePermission struct {
	RoleID       uuid.UUID `json:"role_id" db:"role_id"`
	PermissionID uuid.UUID `json:"permission_id" db:"permission_id"`
}

func (p *Permission) Name() string {
	return p.Module + ":" + p.Action
}
