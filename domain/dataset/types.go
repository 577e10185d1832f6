package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the declared data kind recorded for a column at ingestion.
type Kind string

const (
	KindInt       Kind = "int"
	KindFloat     Kind = "float"
	KindString    Kind = "string"
	KindTimestamp Kind = "timestamp"
	KindBool      Kind = "bool"
	KindList      Kind = "list"
	KindStruct    Kind = "struct"
	KindUnknown   Kind = "unknown"
)

// Column holds one named value sequence of a consistent declared kind.
// Valid marks non-null entries; exactly one of the typed slices is populated,
// matching the kind family (Floats for numeric kinds, Strings for string-like
// kinds, Times for timestamps). Unsupported kinds carry only the mask.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
	Times   []time.Time
	Valid   []bool
}

// Len returns the total row count including nulls.
func (c *Column) Len() int {
	return len(c.Valid)
}

// NullCount returns the number of null entries.
func (c *Column) NullCount() int {
	nulls := 0
	for _, ok := range c.Valid {
		if !ok {
			nulls++
		}
	}
	return nulls
}

// NullPct returns the null percentage relative to total row count.
func (c *Column) NullPct() float64 {
	if c.Len() == 0 {
		return 0
	}
	return float64(c.NullCount()) / float64(c.Len()) * 100
}

// NonNullFloats returns the non-null numeric values in row order.
func (c *Column) NonNullFloats() []float64 {
	out := make([]float64, 0, len(c.Floats))
	for i, ok := range c.Valid {
		if ok && i < len(c.Floats) {
			out = append(out, c.Floats[i])
		}
	}
	return out
}

// NonNullStrings returns the non-null string values in row order.
func (c *Column) NonNullStrings() []string {
	out := make([]string, 0, len(c.Strings))
	for i, ok := range c.Valid {
		if ok && i < len(c.Strings) {
			out = append(out, c.Strings[i])
		}
	}
	return out
}

// NonNullTimes returns the non-null timestamp values in row order.
func (c *Column) NonNullTimes() []time.Time {
	out := make([]time.Time, 0, len(c.Times))
	for i, ok := range c.Valid {
		if ok && i < len(c.Times) {
			out = append(out, c.Times[i])
		}
	}
	return out
}

// UniqueCount returns the number of distinct non-null values.
func (c *Column) UniqueCount() int {
	switch Classify(c.Kind) {
	case ClassNumeric:
		seen := make(map[float64]struct{})
		for _, v := range c.NonNullFloats() {
			seen[v] = struct{}{}
		}
		return len(seen)
	case ClassTemporal:
		seen := make(map[time.Time]struct{})
		for _, v := range c.NonNullTimes() {
			seen[v] = struct{}{}
		}
		return len(seen)
	default:
		seen := make(map[string]struct{})
		for _, v := range c.NonNullStrings() {
			seen[v] = struct{}{}
		}
		return len(seen)
	}
}

// DisplayValue renders the value at row i for previews and samples.
func (c *Column) DisplayValue(i int) string {
	if i < 0 || i >= len(c.Valid) || !c.Valid[i] {
		return ""
	}
	switch Classify(c.Kind) {
	case ClassNumeric:
		if c.Kind == KindInt {
			return strconv.FormatInt(int64(c.Floats[i]), 10)
		}
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case ClassTemporal:
		return c.Times[i].Format("2006-01-02 15:04:05")
	case ClassTextual:
		return c.Strings[i]
	default:
		return fmt.Sprintf("<%s>", c.Kind)
	}
}

// Dataset is an ordered sequence of named columns plus load identity.
// Immutable once built; a reload replaces the whole value.
type Dataset struct {
	Name    string
	Split   string
	Rows    int
	Columns []Column
}

// Column returns the named column, or nil if absent.
func (d *Dataset) Column(name string) *Column {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, 0, len(d.Columns))
	for i := range d.Columns {
		names = append(names, d.Columns[i].Name)
	}
	return names
}

// ColumnsOfClass returns the names of columns classified as class.
func (d *Dataset) ColumnsOfClass(class Class) []string {
	var names []string
	for i := range d.Columns {
		if Classify(d.Columns[i].Kind) == class {
			names = append(names, d.Columns[i].Name)
		}
	}
	return names
}

// Completeness returns the percentage of non-null cells across the dataset.
func (d *Dataset) Completeness() float64 {
	total := d.Rows * len(d.Columns)
	if total == 0 {
		return 100
	}
	nulls := 0
	for i := range d.Columns {
		nulls += d.Columns[i].NullCount()
	}
	return float64(total-nulls) / float64(total) * 100
}

// ApproxBytes estimates the in-memory footprint of the column data.
func (d *Dataset) ApproxBytes() int64 {
	var size int64
	for i := range d.Columns {
		c := &d.Columns[i]
		size += int64(len(c.Valid))
		size += int64(len(c.Floats) * 8)
		size += int64(len(c.Times) * 24)
		for _, s := range c.Strings {
			size += int64(len(s) + 16)
		}
	}
	return size
}
