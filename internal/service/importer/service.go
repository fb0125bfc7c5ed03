package importer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/phoenixpgs/guardian-api/internal/csvio"
)

// Table types accepted by the import endpoint
const (
	TableOrganizations = "organizations"
	TableFacilities    = "facilities"
	TableDepartments   = "departments"
	TableAreas         = "areas"
	TableStandards     = "standards"
	TableUsers         = "users"
)

// Result summarizes one import run
type Result struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Import writes parsed CSV rows into the target database. Rows are
// processed sequentially and independently: a failed row is recorded and
// the remaining rows continue. Display row numbers are CSV line numbers,
// so the first data row reports as row 2.
func (s *Service) Import(ctx context.Context, db *sqlx.DB, tableType string, rows []csvio.Row) (*Result, error) {
	importRow, err := s.rowImporter(tableType)
	if err != nil {
		return nil, err
	}

	result := &Result{Total: len(rows)}
	for i, row := range rows {
		displayRow := i + 2
		if err := importRow(ctx, db, row, displayRow); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", displayRow, err))
			continue
		}
		result.Imported++
	}
	result.Success = len(result.Errors) == 0
	return result, nil
}

type rowImportFunc func(ctx context.Context, db *sqlx.DB, row csvio.Row, displayRow int) error

func (s *Service) rowImporter(tableType string) (rowImportFunc, error) {
	switch tableType {
	case TableOrganizations:
		return s.importOrganization, nil
	case TableFacilities:
		return s.importFacility, nil
	case TableDepartments:
		return s.importDepartment, nil
	case TableAreas:
		return s.importArea, nil
	case TableStandards:
		return s.importStandard, nil
	case TableUsers:
		return s.importUser, nil
	default:
		return nil, fmt.Errorf("unsupported table type: %s", tableType)
	}
}

func field(row csvio.Row, name string) string {
	return strings.TrimSpace(row[name])
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Service) importOrganization(ctx context.Context, db *sqlx.DB, row csvio.Row, _ int) error {
	name := field(row, "organizationName")
	code := field(row, "organizationCode")
	if name == "" || code == "" {
		return fmt.Errorf("organizationName and organizationCode are required")
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO organizations (id, name, code, logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name,
			logo = COALESCE(EXCLUDED.logo, organizations.logo),
			updated_at = EXCLUDED.updated_at
	`, uuid.New(), name, code, nullable(field(row, "logo")), time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert organization: %w", err)
	}
	return nil
}

// resolveOrganization finds an organization by name or code
func resolveOrganization(ctx context.Context, db *sqlx.DB, row csvio.Row) (uuid.UUID, string, error) {
	name := field(row, "organizationName")
	code := field(row, "organizationCode")
	ref := name
	if ref == "" {
		ref = code
	}
	if ref == "" {
		return uuid.Nil, "", fmt.Errorf("organizationName or organizationCode is required")
	}

	var id uuid.UUID
	err := db.GetContext(ctx, &id,
		`SELECT id FROM organizations WHERE (name = $1 OR code = $1) AND deleted_at IS NULL`, ref)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, "", fmt.Errorf("Organization '%s' not found", ref)
	}
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to look up organization: %w", err)
	}
	return id, ref, nil
}

func resolveFacility(ctx context.Context, db *sqlx.DB, orgID uuid.UUID, orgName, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.GetContext(ctx, &id,
		`SELECT id FROM facilities WHERE organization_id = $1 AND name = $2 AND deleted_at IS NULL`,
		orgID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("Facility '%s' not found in organization '%s'", name, orgName)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up facility: %w", err)
	}
	return id, nil
}

func resolveDepartment(ctx context.Context, db *sqlx.DB, facilityID uuid.UUID, facilityName, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.GetContext(ctx, &id,
		`SELECT id FROM departments WHERE facility_id = $1 AND name = $2 AND deleted_at IS NULL`,
		facilityID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("Department '%s' not found in facility '%s'", name, facilityName)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up department: %w", err)
	}
	return id, nil
}

func resolveArea(ctx context.Context, db *sqlx.DB, departmentID uuid.UUID, departmentName, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.GetContext(ctx, &id,
		`SELECT id FROM areas WHERE department_id = $1 AND name = $2 AND deleted_at IS NULL`,
		departmentID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("Area '%s' not found in department '%s'", name, departmentName)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up area: %w", err)
	}
	return id, nil
}

func (s *Service) importFacility(ctx context.Context, db *sqlx.DB, row csvio.Row, _ int) error {
	name := field(row, "facilityName")
	if name == "" {
		return fmt.Errorf("facilityName is required")
	}

	orgID, _, err := resolveOrganization(ctx, db, row)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO facilities (id, name, ref, city, organization_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (organization_id, name) DO UPDATE
		SET ref = COALESCE(EXCLUDED.ref, facilities.ref),
			city = COALESCE(EXCLUDED.city, facilities.city),
			updated_at = EXCLUDED.updated_at
	`, uuid.New(), name, nullable(field(row, "facilityRef")), nullable(field(row, "facilityCity")), orgID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert facility: %w", err)
	}
	return nil
}

func (s *Service) importDepartment(ctx context.Context, db *sqlx.DB, row csvio.Row, _ int) error {
	name := field(row, "departmentName")
	if name == "" {
		return fmt.Errorf("departmentName is required")
	}

	orgID, orgName, err := resolveOrganization(ctx, db, row)
	if err != nil {
		return err
	}
	facilityID, err := resolveFacility(ctx, db, orgID, orgName, field(row, "facilityName"))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO departments (id, name, facility_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (facility_id, name) DO UPDATE
		SET updated_at = EXCLUDED.updated_at
	`, uuid.New(), name, facilityID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert department: %w", err)
	}
	return nil
}

func (s *Service) importArea(ctx context.Context, db *sqlx.DB, row csvio.Row, _ int) error {
	name := field(row, "areaName")
	if name == "" {
		return fmt.Errorf("areaName is required")
	}

	orgID, orgName, err := resolveOrganization(ctx, db, row)
	if err != nil {
		return err
	}
	facilityName := field(row, "facilityName")
	facilityID, err := resolveFacility(ctx, db, orgID, orgName, facilityName)
	if err != nil {
		return err
	}
	departmentID, err := resolveDepartment(ctx, db, facilityID, facilityName, field(row, "departmentName"))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO areas (id, name, department_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (department_id, name) DO UPDATE
		SET updated_at = EXCLUDED.updated_at
	`, uuid.New(), name, departmentID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert area: %w", err)
	}
	return nil
}

func (s *Service) importUser(ctx context.Context, db *sqlx.DB, row csvio.Row, _ int) error {
	employeeID := field(row, "employeeId")
	name := field(row, "name")
	if employeeID == "" || name == "" {
		return fmt.Errorf("employeeId and name are required")
	}

	isActive := true
	if v := field(row, "isActive"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid isActive value '%s'", v)
		}
		isActive = parsed
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO users (
			id, employee_id, name, email, department, is_active,
			external_source, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (employee_id) DO UPDATE
		SET name = EXCLUDED.name,
			email = COALESCE(EXCLUDED.email, users.email),
			department = COALESCE(EXCLUDED.department, users.department),
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`, uuid.New(), employeeID, name, nullable(field(row, "email")),
		nullable(field(row, "department")), isActive,
		nullable(field(row, "externalSource")), time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// importStandard resolves the full organization → facility → department →
// area chain by name, then inserts the standard and its UOM entries. A
// failed hierarchy lookup fails the row; malformed UOM JSON only logs a
// warning and the standard is still created.
func (s *Service) importStandard(ctx context.Context, db *sqlx.DB, row csvio.Row, displayRow int) error {
	name := field(row, "standardName")
	if name == "" {
		name = field(row, "name")
	}
	if name == "" {
		return fmt.Errorf("standardName is required")
	}

	orgID, orgName, err := resolveOrganization(ctx, db, row)
	if err != nil {
		return err
	}
	facilityName := field(row, "facilityName")
	facilityID, err := resolveFacility(ctx, db, orgID, orgName, facilityName)
	if err != nil {
		return err
	}
	departmentName := field(row, "departmentName")
	departmentID, err := resolveDepartment(ctx, db, facilityID, facilityName, departmentName)
	if err != nil {
		return err
	}
	areaID, err := resolveArea(ctx, db, departmentID, departmentName, field(row, "areaName"))
	if err != nil {
		return err
	}

	version := 1
	if v := field(row, "version"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid version '%s'", v)
		}
		version = parsed
	}

	isCurrent := true
	if v := field(row, "isCurrentVersion"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid isCurrentVersion value '%s'", v)
		}
		isCurrent = parsed
	}

	bestPractices := parseJSONList(row["bestPractices"])
	processOpportunities := parseJSONList(row["processOpportunities"])
	notes := field(row, "notes")

	standardID := uuid.New()
	now := time.Now()
	_, err = db.ExecContext(ctx, `
		INSERT INTO standards (
			id, name, facility_id, department_id, area_id,
			version, base_standard_id, is_current_version, is_active,
			best_practices, process_opportunities, version_notes, created_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NULL, $7, true, $8, $9, $10, $11, $12, $12)
	`, standardID, name, facilityID, departmentID, areaID,
		version, isCurrent, jsonList(bestPractices), jsonList(processOpportunities),
		nullable(notes), nullable(field(row, "createdBy")), now)
	if err != nil {
		return fmt.Errorf("failed to insert standard: %w", err)
	}

	for _, entry := range s.collectUomEntries(row, displayRow) {
		_, err = db.ExecContext(ctx, `
			INSERT INTO uom_entries (
				id, uom, description, sam_value, tags, standard_id,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		`, uuid.New(), entry.Uom, entry.Description, entry.SamValue,
			jsonList(entry.Tags), standardID, time.Now())
		if err != nil {
			return fmt.Errorf("failed to insert uom entry: %w", err)
		}
	}
	return nil
}

// collectUomEntries reads UOM entries from the embedded uomEntries JSON
// column when present, falling back to the template's uomN_ column groups.
func (s *Service) collectUomEntries(row csvio.Row, displayRow int) []csvio.UomEntryData {
	raw := strings.TrimSpace(row["uomEntries"])
	if raw != "" {
		var entries []csvio.UomEntryData
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			log.Warn().
				Err(err).
				Int("row", displayRow).
				Msg("failed to parse uomEntries JSON, importing standard without UOM entries")
			return nil
		}
		return entries
	}
	return csvio.TransformRow(row).UomEntries
}

func parseJSONList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		// Fall back to delimiter-separated values.
		for _, p := range strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == '|' }) {
			if t := strings.TrimSpace(p); t != "" {
				list = append(list, t)
			}
		}
	}
	return list
}

// jsonList renders a string slice as a JSONB literal for insertion
func jsonList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}
