package csvio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validStandardRow() Row {
	return Row{
		"organizationName":    "Acme Logistics",
		"organizationCode":    "ACME",
		"facilityName":        "Main DC",
		"departmentName":      "Outbound",
		"areaName":            "Pack Line 1",
		"standardName":        "Case Pack",
		"notes":               "baseline",
		"uom1_name":           "Case",
		"uom1_description":    "Pack one case",
		"uom1_samValue":       "0.45",
		"bestPractice1":       "Scan before packing",
		"processOpportunity1": "Reduce walking",
	}
}

func TestValidateStandardRowValid(t *testing.T) {
	v := ValidateStandardRow(validStandardRow(), 2)
	assert.True(t, v.IsValid())
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
}

func TestValidateStandardRowMissingRequiredColumns(t *testing.T) {
	row := validStandardRow()
	row["facilityName"] = ""
	row["standardName"] = "   "

	v := ValidateStandardRow(row, 3)
	assert.False(t, v.IsValid())
	assert.Contains(t, v.Errors, "Row 3: facilityName is required")
	assert.Contains(t, v.Errors, "Row 3: standardName is required")
}

func TestValidateStandardRowPartialUomSlot(t *testing.T) {
	row := validStandardRow()
	row["uom5_name"] = "Tote"

	v := ValidateStandardRow(row, 2)
	assert.False(t, v.IsValid())
	assert.Contains(t, v.Errors, "Row 2: uom5_description is required")
	assert.Contains(t, v.Errors, "Row 2: uom5_samValue is required")
}

func TestValidateStandardRowSamValueBounds(t *testing.T) {
	for _, bad := range []string{"0", "-1", "abc", "NaN", "Inf", "-Inf"} {
		row := validStandardRow()
		row["uom1_samValue"] = bad

		v := ValidateStandardRow(row, 2)
		assert.Contains(t, v.Errors, "Row 2: uom1_samValue must be a positive number", "samValue %q", bad)
	}

	for _, good := range []string{"0.001", "1", "123.45"} {
		row := validStandardRow()
		row["uom1_samValue"] = good

		v := ValidateStandardRow(row, 2)
		assert.True(t, v.IsValid(), "samValue %q", good)
	}
}

func TestValidateStandardRowEmptyGroupsWarn(t *testing.T) {
	row := Row{
		"organizationName": "Acme Logistics",
		"organizationCode": "ACME",
		"facilityName":     "Main DC",
		"departmentName":   "Outbound",
		"areaName":         "Pack Line 1",
		"standardName":     "Case Pack",
		"notes":            "baseline",
	}

	v := ValidateStandardRow(row, 4)
	assert.True(t, v.IsValid())
	assert.Contains(t, v.Warnings, "Row 4: no UOM entries defined")
	assert.Contains(t, v.Warnings, "Row 4: no best practices defined")
	assert.Contains(t, v.Warnings, "Row 4: no process opportunities defined")
}
