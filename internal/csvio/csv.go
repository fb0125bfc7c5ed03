package csvio

import (
	"fmt"
	"strings"
)

// Row is one parsed CSV data row keyed by header name
type Row map[string]string

// FormatLine renders one CSV record. Fields containing commas, quotes or
// newlines are quoted, with embedded quotes doubled.
func FormatLine(fields []string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		if strings.ContainsAny(f, ",\"\n\r") {
			out[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		} else {
			out[i] = f
		}
	}
	return strings.Join(out, ",")
}

// ParseLine splits one CSV record into fields. Quoted fields may contain
// commas and newlines; a doubled quote inside a quoted field unescapes to
// a literal quote.
func ParseLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// splitRecords splits raw CSV text into records, honouring quotes so that
// newlines inside quoted fields do not terminate a record.
func splitRecords(text string) []string {
	var records []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			cur.WriteByte(ch)
		case ch == '\n' && !inQuotes:
			records = append(records, strings.TrimSuffix(cur.String(), "\r"))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	if cur.Len() > 0 {
		records = append(records, strings.TrimSuffix(cur.String(), "\r"))
	}

	out := records[:0]
	for _, r := range records {
		if strings.TrimSpace(r) != "" {
			out = append(out, r)
		}
	}
	return out
}

// ParseContent parses a whole CSV document. The first record is the header
// and defines field order; each following record becomes one Row. Records
// shorter than the header are padded with empty strings.
func ParseContent(text string) ([]Row, error) {
	records := splitRecords(text)
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV must contain a header row and at least one data row")
	}

	header := ParseLine(records[0])
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		fields := ParseLine(record)
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
