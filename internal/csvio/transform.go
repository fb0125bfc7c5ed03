package csvio

import (
	"fmt"
	"strconv"
	"strings"
)

// UomEntryData is one transformed UOM slot
type UomEntryData struct {
	Uom         string   `json:"uom"`
	Description string   `json:"description"`
	SamValue    float64  `json:"samValue"`
	Tags        []string `json:"tags"`
}

// StandardRowData is the structured form of one validated standards row
type StandardRowData struct {
	OrganizationName     string         `json:"organizationName"`
	OrganizationCode     string         `json:"organizationCode"`
	FacilityName         string         `json:"facilityName"`
	FacilityRef          string         `json:"facilityRef"`
	FacilityCity         string         `json:"facilityCity"`
	DepartmentName       string         `json:"departmentName"`
	AreaName             string         `json:"areaName"`
	StandardName         string         `json:"standardName"`
	Notes                string         `json:"notes"`
	UomEntries           []UomEntryData `json:"uomEntries"`
	BestPractices        []string       `json:"bestPractices"`
	ProcessOpportunities []string       `json:"processOpportunities"`
}

// TransformRow converts a validated raw row into structured standard data.
// UOM slots are collected in ascending slot order; a slot contributes only
// when name, description and samValue are all present. Best-practice and
// process-opportunity columns keep their numeric suffix order.
func TransformRow(row Row) StandardRowData {
	data := StandardRowData{
		OrganizationName: strings.TrimSpace(row["organizationName"]),
		OrganizationCode: strings.TrimSpace(row["organizationCode"]),
		FacilityName:     strings.TrimSpace(row["facilityName"]),
		FacilityRef:      strings.TrimSpace(row["facilityRef"]),
		FacilityCity:     strings.TrimSpace(row["facilityCity"]),
		DepartmentName:   strings.TrimSpace(row["departmentName"]),
		AreaName:         strings.TrimSpace(row["areaName"]),
		StandardName:     strings.TrimSpace(row["standardName"]),
		Notes:            strings.TrimSpace(row["notes"]),
	}

	for n := 1; n <= MaxUomSlots; n++ {
		name := strings.TrimSpace(row[fmt.Sprintf("uom%d_name", n)])
		desc := strings.TrimSpace(row[fmt.Sprintf("uom%d_description", n)])
		sam := strings.TrimSpace(row[fmt.Sprintf("uom%d_samValue", n)])
		if name == "" || desc == "" || sam == "" {
			continue
		}
		value, err := strconv.ParseFloat(sam, 64)
		if err != nil {
			continue
		}
		data.UomEntries = append(data.UomEntries, UomEntryData{
			Uom:         name,
			Description: desc,
			SamValue:    value,
			Tags:        splitTags(row[fmt.Sprintf("uom%d_tags", n)]),
		})
	}

	for n := 1; n <= MaxBestPractices; n++ {
		if s := strings.TrimSpace(row[fmt.Sprintf("bestPractice%d", n)]); s != "" {
			data.BestPractices = append(data.BestPractices, s)
		}
	}
	for n := 1; n <= MaxProcessOpportunities; n++ {
		if s := strings.TrimSpace(row[fmt.Sprintf("processOpportunity%d", n)]); s != "" {
			data.ProcessOpportunities = append(data.ProcessOpportunities, s)
		}
	}

	return data
}

// splitTags splits a tag cell on semicolons or commas, trimming each tag
// and dropping empties.
func splitTags(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ','
	})
	var tags []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
