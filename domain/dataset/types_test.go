package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func numericColumn(name string, values []float64, valid []bool) Column {
	return Column{Name: name, Kind: KindFloat, Floats: values, Valid: valid}
}

func TestColumn_NullAccounting(t *testing.T) {
	col := numericColumn("amount",
		[]float64{1, 2, 3, 4, 5, 0},
		[]bool{true, true, true, true, true, false})

	assert.Equal(t, 6, col.Len())
	assert.Equal(t, 1, col.NullCount())
	assert.InDelta(t, 16.7, col.NullPct(), 0.05)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, col.NonNullFloats())
	assert.Equal(t, 5, col.UniqueCount())
}

func TestColumn_UniqueExcludesNulls(t *testing.T) {
	col := Column{
		Name:    "category",
		Kind:    KindString,
		Strings: []string{"A", "B", "A", "C", "A", ""},
		Valid:   []bool{true, true, true, true, true, false},
	}

	assert.Equal(t, 3, col.UniqueCount())
	assert.Equal(t, 1, col.NullCount())
}

func TestColumn_DisplayValue(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	intCol := Column{Name: "n", Kind: KindInt, Floats: []float64{42}, Valid: []bool{true}}
	assert.Equal(t, "42", intCol.DisplayValue(0))

	timeCol := Column{Name: "t", Kind: KindTimestamp, Times: []time.Time{ts}, Valid: []bool{true}}
	assert.Equal(t, "2024-03-15 10:30:00", timeCol.DisplayValue(0))

	boolCol := Column{Name: "b", Kind: KindBool, Valid: []bool{true}}
	assert.Equal(t, "<bool>", boolCol.DisplayValue(0))

	nullCol := Column{Name: "x", Kind: KindFloat, Floats: []float64{0}, Valid: []bool{false}}
	assert.Equal(t, "", nullCol.DisplayValue(0))
}

func TestDataset_ColumnLookupAndClasses(t *testing.T) {
	ds := &Dataset{
		Name:  "demo",
		Split: "train",
		Rows:  2,
		Columns: []Column{
			{Name: "id", Kind: KindInt, Floats: []float64{1, 2}, Valid: []bool{true, true}},
			{Name: "label", Kind: KindString, Strings: []string{"a", "b"}, Valid: []bool{true, true}},
			{Name: "when", Kind: KindTimestamp, Times: make([]time.Time, 2), Valid: []bool{true, true}},
		},
	}

	assert.NotNil(t, ds.Column("label"))
	assert.Nil(t, ds.Column("missing"))
	assert.Equal(t, []string{"id", "label", "when"}, ds.ColumnNames())
	assert.Equal(t, []string{"id"}, ds.ColumnsOfClass(ClassNumeric))
	assert.Equal(t, []string{"label"}, ds.ColumnsOfClass(ClassTextual))
	assert.Equal(t, []string{"when"}, ds.ColumnsOfClass(ClassTemporal))
}

func TestDataset_Completeness(t *testing.T) {
	ds := &Dataset{
		Rows: 4,
		Columns: []Column{
			{Name: "a", Kind: KindFloat, Floats: make([]float64, 4), Valid: []bool{true, true, true, true}},
			{Name: "b", Kind: KindFloat, Floats: make([]float64, 4), Valid: []bool{true, true, false, false}},
		},
	}
	assert.InDelta(t, 75.0, ds.Completeness(), 1e-9)

	empty := &Dataset{}
	assert.Equal(t, 100.0, empty.Completeness())
}
