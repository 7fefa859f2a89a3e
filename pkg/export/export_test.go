package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRendersHeadersAndRows(t *testing.T) {
	data := Dataset{
		Headers: []string{"Reg No", "Name", "Average"},
		Rows: []map[string]string{
			{"Reg No": "R001", "Name": "Alice", "Average": "83.67"},
			{"Reg No": "R002", "Name": "Bob", "Average": "N/A"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Reg No,Name,Average", lines[0])
	assert.Equal(t, "R001,Alice,83.67", lines[1])
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRendersNonEmptyDocument(t *testing.T) {
	data := Dataset{
		Headers: []string{"Name"},
		Rows:    []map[string]string{{"Name": "Alice"}},
	}

	out, err := NewPDFExporter().Render(data, "Student Roster")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPDFRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}
