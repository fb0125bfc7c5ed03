package rbac

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository"
)

type RBACServicer interface {
	CreateRole(ctx context.Context, role *model.Role) error
	GetRole(ctx context.Context, id uuid.UUID) (*model.Role, error)
	UpdateRole(ctx context.Context, role *model.Role) error
	DeleteRole(ctx context.Context, id uuid.UUID) error
	ListRoles(ctx context.Context) ([]*model.Role, error)
	CreatePermission(ctx context.Context, permission *model.Permission) error
	ListPermissions(ctx context.Context) ([]*model.Permission, error)
	ListRolePermissions(ctx context.Context, roleID uuid.UUID) ([]*model.Permission, error)
	AssignPermissionToRole(ctx context.Context, roleID, permissionID uuid.UUID) error
	RemovePermissionFromRole(ctx context.Context, roleID, permissionID uuid.UUID) error
	HasPermission(ctx context.Context, userID uuid.UUID, module, action string) (bool, error)
}

type Service struct {
	repo repository.RBACRepository
}

func NewService(repo repository.RBACRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateRole(ctx context.Context, role *model.Role) error {
	if role.Name == "" {
		return fmt.Errorf("role name is required")
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (s *Service) GetRole(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	role, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

func (s *Service) UpdateRole(ctx context.Context, role *model.Role) error {
	if role.Name == "" {
		return fmt.Errorf("role name is required")
	}
	current, err := s.repo.GetRole(ctx, role.ID)
	if err != nil {
		return fmt.Errorf("failed to get role: %w", err)
	}
	if current.IsSystemRole {
		return fmt.Errorf("cannot modify system roles")
	}
	return s.repo.UpdateRole(ctx, role)
}

func (s *Service) DeleteRole(ctx context.Context, id uuid.UUID) error {
	role, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get role: %w", err)
	}
	if role.IsSystemRole {
		return fmt.Errorf("cannot delete system roles")
	}
	return s.repo.DeleteRole(ctx, id)
}

func (s *Service) ListRoles(ctx context.Context) ([]*model.Role, error) {
	return s.repo.ListRoles(ctx)
}

func (s *Service) CreatePermission(ctx context.Context, permission *model.Permission) error {
	if permission.Module == "" || permission.Action == "" {
		return fmt.Errorf("permission module and action are required")
	}
	return s.repo.CreatePermission(ctx, permission)
}

func (s *Service) ListPermissions(ctx context.Context) ([]*model.Permission, error) {
	return s.repo.ListPermissions(ctx)
}

func (s *Service) ListRolePermissions(ctx context.Context, roleID uuid.UUID) ([]*model.Permission, error) {
	return s.repo.ListRolePermissions(ctx, roleID)
}

func (s *Service) AssignPermissionToRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	return s.repo.AssignPermissionToRole(ctx, roleID, permissionID)
}

func (s *Service) RemovePermissionFromRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	return s.repo.RemovePermissionFromRole(ctx, roleID, permissionID)
}

func (s *Service) HasPermission(ctx context.Context, userID uuid.UUID, module, action string) (bool, error) {
	has, err := s.repo.HasPermission(ctx, userID, module, action)
	if err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}
	return has, nil
}
