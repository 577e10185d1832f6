package excel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/internal/analysis"
	"datalens/internal/testkit"
)

func TestBuildWorkbook(t *testing.T) {
	kit := testkit.New()
	ds := kit.OrdersDataset(50)
	summaries := analysis.SummarizeAll(ds, analysis.DefaultTopN)

	f, err := BuildWorkbook(ds, summaries)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Overview", "Columns"}, f.GetSheetList())

	name, err := f.GetCellValue("Overview", "B1")
	require.NoError(t, err)
	assert.Equal(t, ds.Name, name)
	rows, err := f.GetCellValue("Overview", "B3")
	require.NoError(t, err)
	assert.Equal(t, "50", rows)

	header, err := f.GetCellValue("Columns", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Column", header)

	// One data row per column, in dataset order.
	for i, s := range summaries {
		cell, err := f.GetCellValue("Columns", cellRef('A', i+2))
		require.NoError(t, err)
		assert.Equal(t, s.Column, cell)
	}
}

func TestBuildWorkbook_ClassSpecificCells(t *testing.T) {
	kit := testkit.New()
	ds := kit.OrdersDataset(50)
	summaries := analysis.SummarizeAll(ds, analysis.DefaultTopN)

	f, err := BuildWorkbook(ds, summaries)
	require.NoError(t, err)
	defer f.Close()

	for i, s := range summaries {
		row := i + 2
		mean, err := f.GetCellValue("Columns", cellRef('H', row))
		require.NoError(t, err)
		span, err := f.GetCellValue("Columns", cellRef('Q', row))
		require.NoError(t, err)
		top, err := f.GetCellValue("Columns", cellRef('R', row))
		require.NoError(t, err)
		notice, err := f.GetCellValue("Columns", cellRef('S', row))
		require.NoError(t, err)

		switch {
		case s.Numeric != nil:
			assert.NotEmpty(t, mean, "numeric column %s should have a mean", s.Column)
			assert.Empty(t, span)
		case s.Temporal != nil:
			assert.NotEmpty(t, span, "temporal column %s should have a span", s.Column)
			assert.Empty(t, mean)
		case s.Textual != nil:
			assert.NotEmpty(t, top, "textual column %s should have a top value", s.Column)
		default:
			assert.NotEmpty(t, notice, "column %s without stats should carry a notice", s.Column)
		}
	}
}

func cellRef(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}
