package csvio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLineQuoting(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{"plain", []string{"a", "b"}, "a,b"},
		{"comma", []string{"a,b", "c"}, `"a,b",c`},
		{"quote", []string{`say "hi"`, "c"}, `"say ""hi""",c`},
		{"newline", []string{"line1\nline2"}, "\"line1\nline2\""},
		{"empty", []string{"", ""}, ","},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLine(tt.fields))
		})
	}
}

func TestParseLineRoundTrip(t *testing.T) {
	fields := []string{
		"plain",
		"has,comma",
		`has "quotes"`,
		"has\nnewline",
		"",
		`all three: ,"` + "\n",
	}
	assert.Equal(t, fields, ParseLine(FormatLine(fields)))
}

func TestParseContent(t *testing.T) {
	content := "name,notes\nWidget,simple\n\"Multi,line\",\"first\nsecond\"\n"

	rows, err := ParseContent(content)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Widget", rows[0]["name"])
	assert.Equal(t, "simple", rows[0]["notes"])
	assert.Equal(t, "Multi,line", rows[1]["name"])
	assert.Equal(t, "first\nsecond", rows[1]["notes"])
}

func TestParseContentPadsShortRows(t *testing.T) {
	rows, err := ParseContent("a,b,c\n1,2\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["a"])
	assert.Equal(t, "2", rows[0]["b"])
	assert.Equal(t, "", rows[0]["c"])
}

func TestParseContentHandlesCRLFAndBlankLines(t *testing.T) {
	rows, err := ParseContent("a,b\r\n1,2\r\n\r\n3,4\r\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0]["a"])
	assert.Equal(t, "4", rows[1]["b"])
}

func TestParseContentRequiresDataRow(t *testing.T) {
	_, err := ParseContent("a,b\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header row and at least one data row")

	_, err = ParseContent("")
	require.Error(t, err)
}
