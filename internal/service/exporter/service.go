package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/phoenixpgs/guardian-api/internal/csvio"
	"github.com/phoenixpgs/guardian-api/internal/service/importer"
)

type Service struct {
	db *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// Filename builds the attachment name for one export
func (s *Service) Filename(tableType string) string {
	return fmt.Sprintf("%s-export-%s.csv", tableType, time.Now().Format("2006-01-02"))
}

// Export renders one table as CSV text. Standards exports resolve
// hierarchy names and embed UOM entries as a JSON column, so the output
// can be fed back through the import endpoint.
func (s *Service) Export(ctx context.Context, tableType string) (string, error) {
	switch tableType {
	case importer.TableOrganizations:
		return s.exportQuery(ctx, tableType,
			[]string{"organizationName", "organizationCode", "logo"},
			`SELECT name, code, COALESCE(logo, '') FROM organizations
			 WHERE deleted_at IS NULL ORDER BY name`)
	case importer.TableFacilities:
		return s.exportQuery(ctx, tableType,
			[]string{"organizationName", "organizationCode", "facilityName", "facilityRef", "facilityCity"},
			`SELECT o.name, o.code, f.name, COALESCE(f.ref, ''), COALESCE(f.city, '')
			 FROM facilities f
			 JOIN organizations o ON o.id = f.organization_id
			 WHERE f.deleted_at IS NULL ORDER BY o.name, f.name`)
	case importer.TableDepartments:
		return s.exportQuery(ctx, tableType,
			[]string{"organizationName", "facilityName", "departmentName"},
			`SELECT o.name, f.name, d.name
			 FROM departments d
			 JOIN facilities f ON f.id = d.facility_id
			 JOIN organizations o ON o.id = f.organization_id
			 WHERE d.deleted_at IS NULL ORDER BY o.name, f.name, d.name`)
	case importer.TableAreas:
		return s.exportQuery(ctx, tableType,
			[]string{"organizationName", "facilityName", "departmentName", "areaName"},
			`SELECT o.name, f.name, d.name, a.name
			 FROM areas a
			 JOIN departments d ON d.id = a.department_id
			 JOIN facilities f ON f.id = d.facility_id
			 JOIN organizations o ON o.id = f.organization_id
			 WHERE a.deleted_at IS NULL ORDER BY o.name, f.name, d.name, a.name`)
	case importer.TableUsers:
		return s.exportQuery(ctx, tableType,
			[]string{"employeeId", "name", "email", "department", "isActive"},
			`SELECT employee_id, name, COALESCE(email, ''), COALESCE(department, ''),
				CASE WHEN is_active THEN 'true' ELSE 'false' END
			 FROM users WHERE deleted_at IS NULL ORDER BY name`)
	case importer.TableStandards:
		return s.exportStandards(ctx)
	default:
		return "", fmt.Errorf("unsupported table type: %s", tableType)
	}
}

func (s *Service) exportQuery(ctx context.Context, tableType string, header []string, query string) (string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to export %s: %w", tableType, err)
	}
	defer rows.Close()

	var b strings.Builder
	b.WriteString(csvio.FormatLine(header))
	b.WriteString("\n")

	values := make([]string, len(header))
	scan := make([]interface{}, len(header))
	for i := range values {
		scan[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return "", fmt.Errorf("failed to scan export row: %w", err)
		}
		b.WriteString(csvio.FormatLine(values))
		b.WriteString("\n")
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to read export rows: %w", err)
	}
	return b.String(), nil
}

type standardExportRow struct {
	OrganizationName     string  `db:"organization_name"`
	OrganizationCode     string  `db:"organization_code"`
	FacilityName         string  `db:"facility_name"`
	DepartmentName       string  `db:"department_name"`
	AreaName             string  `db:"area_name"`
	StandardName         string  `db:"standard_name"`
	Version              int     `db:"version"`
	IsCurrentVersion     bool    `db:"is_current_version"`
	BestPractices        string  `db:"best_practices"`
	ProcessOpportunities string  `db:"process_opportunities"`
	VersionNotes         *string `db:"version_notes"`
	UomEntries           string  `db:"uom_entries"`
}

func (s *Service) exportStandards(ctx context.Context) (string, error) {
	query := `
		SELECT o.name AS organization_name,
			o.code AS organization_code,
			f.name AS facility_name,
			d.name AS department_name,
			a.name AS area_name,
			s.name AS standard_name,
			s.version,
			s.is_current_version,
			s.best_practices::text AS best_practices,
			s.process_opportunities::text AS process_opportunities,
			s.version_notes,
			COALESCE((
				SELECT json_agg(json_build_object(
					'uom', u.uom,
					'description', u.description,
					'samValue', u.sam_value,
					'tags', u.tags
				) ORDER BY u.created_at, u.id)
				FROM uom_entries u WHERE u.standard_id = s.id
			)::text, '[]') AS uom_entries
		FROM standards s
		JOIN areas a ON a.id = s.area_id
		JOIN departments d ON d.id = s.department_id
		JOIN facilities f ON f.id = s.facility_id
		JOIN organizations o ON o.id = f.organization_id
		WHERE s.deleted_at IS NULL
		ORDER BY o.name, f.name, d.name, a.name, s.name, s.version
	`

	var records []standardExportRow
	if err := s.db.SelectContext(ctx, &records, query); err != nil {
		return "", fmt.Errorf("failed to export standards: %w", err)
	}

	header := []string{
		"organizationName", "organizationCode", "facilityName",
		"departmentName", "areaName", "standardName", "notes",
		"version", "isCurrentVersion",
		"bestPractices", "processOpportunities", "uomEntries",
	}

	var b strings.Builder
	b.WriteString(csvio.FormatLine(header))
	b.WriteString("\n")
	for _, rec := range records {
		notes := ""
		if rec.VersionNotes != nil {
			notes = *rec.VersionNotes
		}
		b.WriteString(csvio.FormatLine([]string{
			rec.OrganizationName,
			rec.OrganizationCode,
			rec.FacilityName,
			rec.DepartmentName,
			rec.AreaName,
			rec.StandardName,
			notes,
			strconv.Itoa(rec.Version),
			strconv.FormatBool(rec.IsCurrentVersion),
			compactJSON(rec.BestPractices),
			compactJSON(rec.ProcessOpportunities),
			compactJSON(rec.UomEntries),
		}))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// compactJSON normalizes a JSON column value for CSV embedding
func compactJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return raw
	}
	return buf.String()
}
