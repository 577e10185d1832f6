package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"datalens/domain/dataset"
	"datalens/internal/analysis"
)

const (
	overviewSheet = "Overview"
	columnsSheet  = "Columns"
)

var columnsHeader = []string{
	"Column", "Kind", "Class", "Rows", "Unique", "Nulls", "Null %",
	"Mean", "Std Dev", "Min", "Q25", "Median", "Q75", "Max",
	"Earliest", "Latest", "Span (days)", "Top Value", "Notice",
}

// BuildWorkbook renders the dataset overview and per-column summaries as
// an xlsx workbook for download. Nothing is written to disk; the caller
// streams the file and discards it.
func BuildWorkbook(ds *dataset.Dataset, summaries []analysis.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", overviewSheet)

	overview := [][]interface{}{
		{"Dataset", ds.Name},
		{"Split", ds.Split},
		{"Rows", ds.Rows},
		{"Columns", len(ds.Columns)},
		{"Completeness %", analysis.Round1(ds.Completeness())},
	}
	for i, row := range overview {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(overviewSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(columnsSheet); err != nil {
		return nil, err
	}
	header := make([]interface{}, len(columnsHeader))
	for i, h := range columnsHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(columnsSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, s := range summaries {
		row := summaryRow(s)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(columnsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// summaryRow flattens one summary into the Columns sheet layout; cells not
// applicable to the column's class stay empty.
func summaryRow(s analysis.Summary) []interface{} {
	row := make([]interface{}, len(columnsHeader))
	row[0] = s.Column
	row[1] = string(s.Kind)
	row[2] = string(s.Class)
	row[3] = s.Count
	row[4] = s.Unique
	row[5] = s.NullCount
	row[6] = s.NullPct

	if s.Numeric != nil {
		row[7] = s.Numeric.Mean
		row[8] = s.Numeric.StdDev
		row[9] = s.Numeric.Min
		row[10] = s.Numeric.Q25
		row[11] = s.Numeric.Median
		row[12] = s.Numeric.Q75
		row[13] = s.Numeric.Max
	}
	if s.Temporal != nil {
		row[14] = s.Temporal.Earliest.Format("2006-01-02 15:04:05")
		row[15] = s.Temporal.Latest.Format("2006-01-02 15:04:05")
		row[16] = s.Temporal.SpanDays
	}
	if s.Textual != nil && len(s.Textual.TopValues) > 0 {
		top := s.Textual.TopValues[0]
		row[17] = fmt.Sprintf("%s (%d, %.1f%%)", top.Value, top.Count, top.Pct)
	}
	if s.Notice != analysis.NoticeNone {
		row[18] = string(s.Notice)
	}
	return row
}
