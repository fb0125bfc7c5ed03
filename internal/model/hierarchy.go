package model

import (
	"github.com/google/uuid"
)

// Organization is the top level of the reporting hierarchy
type Organization struct {
	Base
	Name string  `json:"name" db:"name" binding:"required"`
	Code string  `json:"code" db:"code" binding:"required,orgcode"`
	Logo *string `json:"logo,omitempty" db:"logo"`
}

// Facility is a physical site belonging to an organization
type Facility struct {
	Base
	Name           string    `json:"name" db:"name" binding:"required"`
	Ref            *string   `json:"ref,omitempty" db:"ref"`
	City           *string   `json:"city,omitempty" db:"city"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
}

// Department groups areas within a facility
type Department struct {
	Base
	Name       string    `json:"name" db:"name" binding:"required"`
	FacilityID uuid.UUID `json:"facility_id" db:"facility_id"`
}

// Area is the leaf of the hierarchy; standards attach here
type Area struct {
	Base
	Name         string    `json:"name" db:"name" binding:"required"`
	DepartmentID uuid.UUID `json:"department_id" db:"department_id"`
}
