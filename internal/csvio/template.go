package csvio

import (
	"fmt"
	"strings"
)

// Column-group bounds for the standards import sheet
const (
	MaxUomSlots             = 75
	MaxBestPractices        = 20
	MaxProcessOpportunities = 20
)

// HierarchyColumns are the fixed leading columns of the standards sheet
var HierarchyColumns = []string{
	"organizationName",
	"organizationCode",
	"facilityName",
	"facilityRef",
	"facilityCity",
	"departmentName",
	"areaName",
	"standardName",
	"notes",
}

// TemplateHeader returns the full header row for the standards import
// sheet, in column order.
func TemplateHeader() []string {
	header := make([]string, 0, len(HierarchyColumns)+MaxUomSlots*4+MaxBestPractices+MaxProcessOpportunities)
	header = append(header, HierarchyColumns...)
	for n := 1; n <= MaxUomSlots; n++ {
		header = append(header,
			fmt.Sprintf("uom%d_name", n),
			fmt.Sprintf("uom%d_description", n),
			fmt.Sprintf("uom%d_samValue", n),
			fmt.Sprintf("uom%d_tags", n),
		)
	}
	for n := 1; n <= MaxBestPractices; n++ {
		header = append(header, fmt.Sprintf("bestPractice%d", n))
	}
	for n := 1; n <= MaxProcessOpportunities; n++ {
		header = append(header, fmt.Sprintf("processOpportunity%d", n))
	}
	return header
}

// GenerateTemplate produces the downloadable import template: the header
// row plus one populated sample row.
func GenerateTemplate() string {
	header := TemplateHeader()

	sample := make([]string, len(header))
	copy(sample, []string{
		"Acme Logistics",
		"ACME",
		"Main DC",
		"DC-01",
		"Springfield",
		"Outbound",
		"Pack Line 1",
		"Case Pack",
		"Baseline standard for case packing",
	})
	at := len(HierarchyColumns)
	sample[at] = "Case"
	sample[at+1] = "Pack one case"
	sample[at+2] = "0.45"
	sample[at+3] = "packing;outbound"
	sample[at+4] = "Tote"
	sample[at+5] = "Stage one tote"
	sample[at+6] = "0.2"
	sample[at+7] = "staging"

	bpAt := len(HierarchyColumns) + MaxUomSlots*4
	sample[bpAt] = "Keep work surface clear"
	sample[bpAt+1] = "Scan before packing"

	poAt := bpAt + MaxBestPractices
	sample[poAt] = "Reduce walking between stations"

	var b strings.Builder
	b.WriteString(FormatLine(header))
	b.WriteString("\n")
	b.WriteString(FormatLine(sample))
	b.WriteString("\n")
	return b.String()
}
