package csvio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateHeaderShape(t *testing.T) {
	header := TemplateHeader()
	require.Len(t, header, len(HierarchyColumns)+MaxUomSlots*4+MaxBestPractices+MaxProcessOpportunities)

	assert.Equal(t, "organizationName", header[0])
	assert.Equal(t, "uom1_name", header[len(HierarchyColumns)])
	assert.Contains(t, header, "uom75_tags")
	assert.Contains(t, header, "bestPractice20")
	assert.Equal(t, "processOpportunity20", header[len(header)-1])
}

func TestGenerateTemplateRoundTrips(t *testing.T) {
	rows, err := ParseContent(GenerateTemplate())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	v := ValidateStandardRow(rows[0], 2)
	assert.True(t, v.IsValid(), "sample row must pass validation: %v", v.Errors)

	data := TransformRow(rows[0])
	require.Len(t, data.UomEntries, 2)
	assert.Equal(t, "Case", data.UomEntries[0].Uom)
	assert.Equal(t, []string{"packing", "outbound"}, data.UomEntries[0].Tags)
}
