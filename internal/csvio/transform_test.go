package csvio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRowSlotOrder(t *testing.T) {
	row := validStandardRow()
	row["uom3_name"] = "Pallet"
	row["uom3_description"] = "Wrap one pallet"
	row["uom3_samValue"] = "2.5"

	data := TransformRow(row)
	require.Len(t, data.UomEntries, 2)
	assert.Equal(t, "Case", data.UomEntries[0].Uom)
	assert.Equal(t, "Pallet", data.UomEntries[1].Uom)
	assert.Equal(t, 2.5, data.UomEntries[1].SamValue)
}

func TestTransformRowSkipsIncompleteSlots(t *testing.T) {
	row := validStandardRow()
	row["uom2_name"] = "Tote"
	// no description or samValue for slot 2
	row["uom4_name"] = "Carton"
	row["uom4_description"] = "Seal one carton"
	row["uom4_samValue"] = "not a number"

	data := TransformRow(row)
	require.Len(t, data.UomEntries, 1)
	assert.Equal(t, "Case", data.UomEntries[0].Uom)
}

func TestTransformRowTags(t *testing.T) {
	row := validStandardRow()
	row["uom1_tags"] = "packing; outbound ,priority"

	data := TransformRow(row)
	require.Len(t, data.UomEntries, 1)
	assert.Equal(t, []string{"packing", "outbound", "priority"}, data.UomEntries[0].Tags)
}

func TestTransformRowLists(t *testing.T) {
	row := validStandardRow()
	row["bestPractice2"] = "Keep surface clear"
	row["processOpportunity3"] = "Batch small orders"

	data := TransformRow(row)
	assert.Equal(t, []string{"Scan before packing", "Keep surface clear"}, data.BestPractices)
	assert.Equal(t, []string{"Reduce walking", "Batch small orders"}, data.ProcessOpportunities)
}

func TestTransformRowTrimsHierarchy(t *testing.T) {
	row := validStandardRow()
	row["organizationName"] = "  Acme Logistics  "
	row["areaName"] = " Pack Line 1 "

	data := TransformRow(row)
	assert.Equal(t, "Acme Logistics", data.OrganizationName)
	assert.Equal(t, "Pack Line 1", data.AreaName)
}
