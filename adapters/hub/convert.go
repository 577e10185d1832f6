package hub

import (
	"encoding/json"
	"strings"
	"time"

	"datalens/domain/dataset"
	"datalens/internal"
)

// kindForFeature maps a declared server feature type onto a column kind.
func kindForFeature(f feature) dataset.Kind {
	switch f.Type.Kind {
	case "Value":
		switch {
		case strings.HasPrefix(f.Type.DType, "int"), strings.HasPrefix(f.Type.DType, "uint"):
			return dataset.KindInt
		case strings.HasPrefix(f.Type.DType, "float"), f.Type.DType == "double", f.Type.DType == "decimal":
			return dataset.KindFloat
		case f.Type.DType == "string", f.Type.DType == "large_string":
			return dataset.KindString
		case strings.HasPrefix(f.Type.DType, "timestamp"),
			strings.HasPrefix(f.Type.DType, "date"),
			strings.HasPrefix(f.Type.DType, "time"):
			return dataset.KindTimestamp
		case f.Type.DType == "bool":
			return dataset.KindBool
		default:
			return dataset.KindUnknown
		}
	case "ClassLabel":
		return dataset.KindInt
	case "Sequence", "List", "LargeList", "Array2D", "Array3D":
		return dataset.KindList
	case "Translation", "Dict":
		return dataset.KindStruct
	default:
		return dataset.KindUnknown
	}
}

// buildDataset assembles the in-memory columns from the paged row
// responses. Values that fail to decode for their declared kind become
// null rather than failing the load.
func buildDataset(name, split string, features []feature, pages []*rowsResponse, total int) *dataset.Dataset {
	ds := &dataset.Dataset{Name: name, Split: split, Rows: total}
	for _, f := range features {
		kind := kindForFeature(f)
		col := dataset.Column{
			Name:  f.Name,
			Kind:  kind,
			Valid: make([]bool, total),
		}
		switch dataset.Classify(kind) {
		case dataset.ClassNumeric:
			col.Floats = make([]float64, total)
		case dataset.ClassTemporal:
			col.Times = make([]time.Time, total)
		case dataset.ClassTextual:
			col.Strings = make([]string, total)
		}
		ds.Columns = append(ds.Columns, col)
	}

	row := 0
	for _, page := range pages {
		if page == nil {
			continue
		}
		for _, r := range page.Rows {
			if row >= total {
				break
			}
			for i := range ds.Columns {
				setCell(&ds.Columns[i], row, r.Row[ds.Columns[i].Name])
			}
			row++
		}
	}
	return ds
}

// setCell decodes one raw JSON value into the column at row i. A missing
// key, JSON null, or undecodable value leaves the cell null.
func setCell(col *dataset.Column, i int, raw json.RawMessage) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}

	switch dataset.Classify(col.Kind) {
	case dataset.ClassNumeric:
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return
		}
		col.Floats[i] = v
		col.Valid[i] = true

	case dataset.ClassTemporal:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return
		}
		if t, ok := parseTimestamp(s); ok {
			col.Times[i] = t
			col.Valid[i] = true
		}

	case dataset.ClassTextual:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			// Generic/object catch-all: keep the raw JSON representation.
			col.Strings[i] = string(raw)
			col.Valid[i] = true
			return
		}
		col.Strings[i] = s
		col.Valid[i] = true

	default:
		// Unsupported kinds track presence only.
		col.Valid[i] = true
	}
}

// datetimeNamePatterns are the column-name substrings that trigger
// timestamp reinterpretation at ingestion.
var datetimeNamePatterns = []string{"date", "time", "timestamp", "_at", "_date", "_time"}

// nameLooksTemporal reports whether a column name matches the datetime
// heuristic, case-insensitively.
func nameLooksTemporal(name string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range datetimeNamePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// applyDatetimeHeuristic reinterprets string columns with temporal-looking
// names as timestamps. Values that fail to parse become null; a column of
// coincidentally matching non-date content ends up mostly null, which is an
// accepted false positive of the heuristic rather than an error.
func applyDatetimeHeuristic(ds *dataset.Dataset, log *internal.Logger) {
	for i := range ds.Columns {
		col := &ds.Columns[i]
		if col.Kind != dataset.KindString || !nameLooksTemporal(col.Name) {
			continue
		}

		times := make([]time.Time, col.Len())
		valid := make([]bool, col.Len())
		parsed := 0
		for j, ok := range col.Valid {
			if !ok {
				continue
			}
			if t, good := parseTimestamp(col.Strings[j]); good {
				times[j] = t
				valid[j] = true
				parsed++
			}
		}

		col.Kind = dataset.KindTimestamp
		col.Times = times
		col.Strings = nil
		col.Valid = valid
		log.Debug("column %q reinterpreted as timestamp (%d/%d values parsed)",
			col.Name, parsed, col.Len())
	}
}

// timestampLayouts are tried in order when parsing temporal strings.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
