package csvio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RowValidation collects the outcome of validating one data row. Errors
// block the row; warnings are quality signals only.
type RowValidation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v RowValidation) IsValid() bool {
	return len(v.Errors) == 0
}

var requiredColumns = []string{
	"organizationName",
	"facilityName",
	"departmentName",
	"areaName",
	"standardName",
	"notes",
}

// ValidateStandardRow checks one parsed row of the standards sheet.
// displayRow is the 1-indexed CSV line number shown to the user (the
// first data row is line 2, after the header).
func ValidateStandardRow(row Row, displayRow int) RowValidation {
	var v RowValidation

	for _, col := range requiredColumns {
		if strings.TrimSpace(row[col]) == "" {
			v.Errors = append(v.Errors, fmt.Sprintf("Row %d: %s is required", displayRow, col))
		}
	}

	uomCount := 0
	for n := 1; n <= MaxUomSlots; n++ {
		name := strings.TrimSpace(row[fmt.Sprintf("uom%d_name", n)])
		desc := strings.TrimSpace(row[fmt.Sprintf("uom%d_description", n)])
		sam := strings.TrimSpace(row[fmt.Sprintf("uom%d_samValue", n)])

		if name == "" && desc == "" && sam == "" {
			continue
		}

		// Any value in a slot makes name, description and samValue required.
		if name == "" {
			v.Errors = append(v.Errors, fmt.Sprintf("Row %d: uom%d_name is required", displayRow, n))
		}
		if desc == "" {
			v.Errors = append(v.Errors, fmt.Sprintf("Row %d: uom%d_description is required", displayRow, n))
		}
		if sam == "" {
			v.Errors = append(v.Errors, fmt.Sprintf("Row %d: uom%d_samValue is required", displayRow, n))
		} else if !isPositiveNumber(sam) {
			v.Errors = append(v.Errors, fmt.Sprintf("Row %d: uom%d_samValue must be a positive number", displayRow, n))
		}

		if name != "" && desc != "" && sam != "" {
			uomCount++
		}
	}

	bpCount := 0
	for n := 1; n <= MaxBestPractices; n++ {
		if strings.TrimSpace(row[fmt.Sprintf("bestPractice%d", n)]) != "" {
			bpCount++
		}
	}
	poCount := 0
	for n := 1; n <= MaxProcessOpportunities; n++ {
		if strings.TrimSpace(row[fmt.Sprintf("processOpportunity%d", n)]) != "" {
			poCount++
		}
	}

	if uomCount == 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Row %d: no UOM entries defined", displayRow))
	}
	if bpCount == 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Row %d: no best practices defined", displayRow))
	}
	if poCount == 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Row %d: no process opportunities defined", displayRow))
	}

	return v
}

func isPositiveNumber(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
