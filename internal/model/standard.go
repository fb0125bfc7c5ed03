package model

import (
	"github.com/google/uuid"
)

// Standard is a versioned specification of expected work content for an
// area. Versions form a family rooted at BaseStandardID; exactly one row
// per family carries IsCurrentVersion.
type Standard struct {
	Base
	Name                 string     `json:"name" db:"name" binding:"required"`
	FacilityID           uuid.UUID  `json:"facility_id" db:"facility_id"`
	DepartmentID         uuid.UUID  `json:"department_id" db:"department_id"`
	AreaID               uuid.UUID  `json:"area_id" db:"area_id"`
	Version              int        `json:"version" db:"version"`
	BaseStandardID       *uuid.UUID `json:"base_standard_id,omitempty" db:"base_standard_id"`
	IsCurrentVersion     bool       `json:"is_current_version" db:"is_current_version"`
	IsActive             bool       `json:"is_active" db:"is_active"`
	BestPractices        StringList `json:"best_practices" db:"best_practices"`
	ProcessOpportunities StringList `json:"process_opportunities" db:"process_opportunities"`
	VersionNotes         *string    `json:"version_notes,omitempty" db:"version_notes"`
	CreatedBy            *string    `json:"created_by,omitempty" db:"created_by"`

	UomEntries []*UomEntry `json:"uom_entries,omitempty" db:"-"`
}

// UomEntry is a countable unit of work within a standard, carrying the
// SAM (standard allowed minutes) value for one unit.
type UomEntry struct {
	Base
	Uom         string     `json:"uom" db:"uom" binding:"required"`
	Description string     `json:"description" db:"description"`
	SamValue    float64    `json:"sam_value" db:"sam_value" binding:"required,gt=0"`
	Tags        StringList `json:"tags" db:"tags"`
	StandardID  uuid.UUID  `json:"standard_id" db:"standard_id"`
}

// NewVersionInput holds the caller overrides for a new standard version.
// Nil fields are copied from the original standard.
type NewVersionInput struct {
	Name                 *string     `json:"name"`
	FacilityID           *uuid.UUID  `json:"facility_id"`
	DepartmentID         *uuid.UUID  `json:"department_id"`
	AreaID               *uuid.UUID  `json:"area_id"`
	BestPractices        *StringList `json:"best_practices"`
	ProcessOpportunities *StringList `json:"process_opportunities"`
	UomEntries           []*UomEntry `json:"uom_entries"`
	VersionNotes         *string     `json:"version_notes"`
	CreatedBy            *string     `json:"created_by"`
}

// StandardFilter represents standard list parameters
type StandardFilter struct {
	AreaID      uuid.UUID `json:"area_id" form:"area_id"`
	CurrentOnly bool      `json:"current_only" form:"current_only"`
	ActiveOnly  bool      `json:"active_only" form:"active_only"`
}
