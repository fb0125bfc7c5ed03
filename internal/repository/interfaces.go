package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/model"
)

// All repository interfaces in one file
type (
	OrganizationRepository interface {
		Create(ctx context.Context, org *model.Organization) error
		Get(ctx context.Context, id uuid.UUID) (*model.Organization, error)
		GetByCode(ctx context.Context, code string) (*model.Organization, error)
		Update(ctx context.Context, org *model.Organization) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Organization, error)
	}

	FacilityRepository interface {
		Create(ctx context.Context, facility *model.Facility) error
		Get(ctx context.Context, id uuid.UUID) (*model.Facility, error)
		Update(ctx context.Context, facility *model.Facility) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, organizationID uuid.UUID) ([]*model.Facility, error)
	}

	DepartmentRepository interface {
		Create(ctx context.Context, department *model.Department) error
		Get(ctx context.Context, id uuid.UUID) (*model.Department, error)
		Update(ctx context.Context, department *model.Department) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, facilityID uuid.UUID) ([]*model.Department, error)
	}

	AreaRepository interface {
		Create(ctx context.Context, area *model.Area) error
		Get(ctx context.Context, id uuid.UUID) (*model.Area, error)
		Update(ctx context.Context, area *model.Area) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, departmentID uuid.UUID) ([]*model.Area, error)
	}

	StandardRepository interface {
		Create(ctx context.Context, standard *model.Standard) error
		Get(ctx context.Context, id uuid.UUID) (*model.Standard, error)
		Update(ctx context.Context, standard *model.Standard) error
		Deactivate(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.StandardFilter) ([]*model.Standard, error)
		ListVersions(ctx context.Context, id uuid.UUID) ([]*model.Standard, error)
		CreateNewVersion(ctx context.Context, id uuid.UUID, input *model.NewVersionInput) (*model.Standard, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmployeeID(ctx context.Context, employeeID string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Deactivate(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error)
		UpdateGoals(ctx context.Context, employeeID string, goals *model.GoalUpdate) error
	}

	RBACRepository interface {
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

	ObservationRepository interface {
		Create(ctx context.Context, observation *model.Observation) error
		Get(ctx context.Context, id uuid.UUID) (*model.Observation, error)
		Finalize(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.ObservationFilter) ([]*model.Observation, error)
	}
)
