package sheet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTableData_Empty(t *testing.T) {
	tbl := BuildTableData(nil)

	assert.Equal(t, []string{"Value"}, tbl.Headers)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, 0, tbl.TotalRows)
	assert.False(t, tbl.Truncated())
}

func TestBuildTableData_HeaderPlaceholders(t *testing.T) {
	tbl := BuildTableData([][]string{
		{"Name", "", "Score"},
		{"x", "y", "z"},
	})

	assert.Equal(t, []string{"Name", "Column 2", "Score"}, tbl.Headers)
}

func TestBuildTableData_NormalizesRowWidth(t *testing.T) {
	tbl := BuildTableData([][]string{
		{"A", "B", "C"},
		{"1"},
		{"1", "2", "3", "4", "5"},
	})

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"1", "", ""}, tbl.Rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, tbl.Rows[1])
}

func TestBuildTableData_DropsBlankRows(t *testing.T) {
	tbl := BuildTableData([][]string{
		{"A"},
		{""},
		{"1"},
		{"  "},
		{"2"},
	})

	assert.Equal(t, [][]string{{"1"}, {"2"}}, tbl.Rows)
	assert.Equal(t, 2, tbl.TotalRows)
}

func TestBuildTableData_TruncatesToPreviewBound(t *testing.T) {
	rows := [][]string{{"N"}}
	for i := 0; i < 30; i++ {
		rows = append(rows, []string{fmt.Sprintf("row-%d", i)})
	}

	tbl := BuildTableData(rows)

	assert.Len(t, tbl.Rows, MaxPreviewRows)
	assert.Equal(t, 30, tbl.TotalRows)
	assert.True(t, tbl.Truncated())
}
