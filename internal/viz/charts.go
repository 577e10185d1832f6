package viz

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"datalens/domain/dataset"
	"datalens/internal/analysis"
)

// Histogram bin bounds.
const (
	DefaultBins = 30
	MinBins     = 10
	MaxBins     = 100
)

// Dataset-level chart caps.
const (
	MaxHeatmapColumns = 20
	MaxScatterPoints  = 5000
	MaxBoxGroups      = 15

	// Fixed seed keeps scatter sampling reproducible across renders.
	scatterSeed = 42
)

// ClampBins clamps n into the supported bin range, applying the default
// when n is unset.
func ClampBins(n int) int {
	if n == 0 {
		return DefaultBins
	}
	if n < MinBins {
		return MinBins
	}
	if n > MaxBins {
		return MaxBins
	}
	return n
}

// HistogramBin is one half-open interval [Lo, Hi) with its count; the last
// bin is closed on both ends.
type HistogramBin struct {
	Lo    float64
	Hi    float64
	Count int
}

// HistogramSpec is the binned distribution of a numeric column.
type HistogramSpec struct {
	Column   string
	Bins     []HistogramBin
	MaxCount int
}

// Histogram bins the non-null values of a numeric column into equal-width
// intervals. Returns nil when no non-null values exist.
func Histogram(col *dataset.Column, bins int) *HistogramSpec {
	values := col.NonNullFloats()
	if len(values) == 0 {
		return nil
	}
	bins = ClampBins(bins)

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		// Degenerate distribution: a single bin holds everything.
		return &HistogramSpec{
			Column:   col.Name,
			Bins:     []HistogramBin{{Lo: lo, Hi: hi, Count: len(values)}},
			MaxCount: len(values),
		}
	}

	width := (hi - lo) / float64(bins)
	spec := &HistogramSpec{Column: col.Name, Bins: make([]HistogramBin, bins)}
	for i := range spec.Bins {
		spec.Bins[i].Lo = lo + float64(i)*width
		spec.Bins[i].Hi = lo + float64(i+1)*width
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		spec.Bins[idx].Count++
	}
	for _, b := range spec.Bins {
		if b.Count > spec.MaxCount {
			spec.MaxCount = b.Count
		}
	}
	return spec
}

// BarSpec is the ranked bar chart of a textual column's top values.
type BarSpec struct {
	Column   string
	Points   []analysis.ValueCount
	MaxCount int
}

// RankedBar builds the top-N bar chart for a textual column. Returns nil
// when no non-null values exist.
func RankedBar(col *dataset.Column, topN int) *BarSpec {
	values := col.NonNullStrings()
	if len(values) == 0 {
		return nil
	}
	points := analysis.TopValues(values, analysis.ClampTopN(topN), col.Len())
	spec := &BarSpec{Column: col.Name, Points: points}
	for _, p := range points {
		if p.Count > spec.MaxCount {
			spec.MaxCount = p.Count
		}
	}
	return spec
}

// TimelineMode selects the per-date aggregation for a timeline.
type TimelineMode string

const (
	TimelineCount TimelineMode = "count"
	TimelineSum   TimelineMode = "sum"
)

// TimelinePoint is one calendar date with its aggregated value.
type TimelinePoint struct {
	Date  string
	Value float64
}

// TimelineSpec is a per-calendar-date time series for a temporal column.
type TimelineSpec struct {
	Column   string
	Mode     TimelineMode
	ValueCol string
	Points   []TimelinePoint
	MaxValue float64
}

// Timeline aggregates a temporal column per calendar date. With valueCol
// nil it counts occurrences; otherwise it sums valueCol over rows where
// both columns are non-null. Returns nil when nothing survives filtering.
func Timeline(dateCol *dataset.Column, valueCol *dataset.Column) *TimelineSpec {
	mode := TimelineCount
	if valueCol != nil {
		mode = TimelineSum
	}

	byDate := make(map[string]float64)
	for i, ok := range dateCol.Valid {
		if !ok || i >= len(dateCol.Times) {
			continue
		}
		if valueCol != nil && (i >= len(valueCol.Valid) || !valueCol.Valid[i]) {
			continue
		}
		date := dateCol.Times[i].Format("2006-01-02")
		if valueCol != nil {
			byDate[date] += valueCol.Floats[i]
		} else {
			byDate[date]++
		}
	}
	if len(byDate) == 0 {
		return nil
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	spec := &TimelineSpec{Column: dateCol.Name, Mode: mode}
	if valueCol != nil {
		spec.ValueCol = valueCol.Name
	}
	for _, d := range dates {
		v := analysis.Round2(byDate[d])
		spec.Points = append(spec.Points, TimelinePoint{Date: d, Value: v})
		if v > spec.MaxValue {
			spec.MaxValue = v
		}
	}
	return spec
}

// HeatmapCell is one pairwise correlation value.
type HeatmapCell struct {
	X string
	Y string
	R float64
}

// HeatmapSpec is the pairwise correlation matrix over numeric columns.
type HeatmapSpec struct {
	Columns   []string
	Cells     []HeatmapCell
	Truncated bool
}

// CorrelationHeatmap computes Pearson correlations for every pair of
// numeric columns, using rows where both values are non-null. The column
// set is capped at MaxHeatmapColumns for legibility. Returns nil with
// fewer than two numeric columns.
func CorrelationHeatmap(ds *dataset.Dataset) *HeatmapSpec {
	names := ds.ColumnsOfClass(dataset.ClassNumeric)
	if len(names) < 2 {
		return nil
	}

	spec := &HeatmapSpec{}
	if len(names) > MaxHeatmapColumns {
		names = names[:MaxHeatmapColumns]
		spec.Truncated = true
	}
	spec.Columns = names

	cols := make([]*dataset.Column, len(names))
	for i, name := range names {
		cols[i] = ds.Column(name)
	}

	for i := range cols {
		for j := range cols {
			spec.Cells = append(spec.Cells, HeatmapCell{
				X: names[i],
				Y: names[j],
				R: analysis.Round2(pairwiseCorrelation(cols[i], cols[j])),
			})
		}
	}
	return spec
}

func pairwiseCorrelation(a, b *dataset.Column) float64 {
	var xs, ys []float64
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		if a.Valid[i] && b.Valid[i] {
			xs = append(xs, a.Floats[i])
			ys = append(ys, b.Floats[i])
		}
	}
	if len(xs) < 2 {
		return 0
	}
	return stat.Correlation(xs, ys, nil)
}

// ScatterPoint is one (x, y) pair.
type ScatterPoint struct {
	X float64
	Y float64
}

// ScatterSpec is the pairwise scatter of two numeric columns.
type ScatterSpec struct {
	XColumn    string
	YColumn    string
	Points     []ScatterPoint
	TotalPairs int
	Sampled    bool
}

// Scatter pairs two numeric columns over rows where both are non-null.
// Above MaxScatterPoints pairs, exactly MaxScatterPoints are sampled with
// a fixed seed so re-rendering the same data reproduces the same sample.
// Returns nil when no pairs survive filtering.
func Scatter(x, y *dataset.Column) *ScatterSpec {
	var points []ScatterPoint
	n := x.Len()
	if y.Len() < n {
		n = y.Len()
	}
	for i := 0; i < n; i++ {
		if x.Valid[i] && y.Valid[i] {
			points = append(points, ScatterPoint{X: x.Floats[i], Y: y.Floats[i]})
		}
	}
	if len(points) == 0 {
		return nil
	}

	spec := &ScatterSpec{XColumn: x.Name, YColumn: y.Name, TotalPairs: len(points)}
	if len(points) > MaxScatterPoints {
		spec.Sampled = true
		points = samplePoints(points, MaxScatterPoints)
	}
	spec.Points = points
	return spec
}

// samplePoints deterministically selects k points, preserving row order.
func samplePoints(points []ScatterPoint, k int) []ScatterPoint {
	rng := rand.New(rand.NewSource(scatterSeed))
	idx := rng.Perm(len(points))[:k]
	sort.Ints(idx)

	sampled := make([]ScatterPoint, 0, k)
	for _, i := range idx {
		sampled = append(sampled, points[i])
	}
	return sampled
}

// BoxGroup is the five-number summary for one group.
type BoxGroup struct {
	Label  string
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
	Count  int
}

// BoxPlotSpec is the distribution of a numeric column, optionally split by
// a categorical column limited to its most frequent groups.
type BoxPlotSpec struct {
	Column  string
	GroupBy string
	Groups  []BoxGroup
}

// BoxPlot computes five-number summaries. With groupCol nil a single group
// covers the whole column; otherwise one group per top category (capped at
// MaxBoxGroups), over rows where both columns are non-null. Only textual
// columns can group; any other kind falls back to the single group.
func BoxPlot(valueCol *dataset.Column, groupCol *dataset.Column) *BoxPlotSpec {
	if groupCol != nil && dataset.Classify(groupCol.Kind) != dataset.ClassTextual {
		groupCol = nil
	}
	if groupCol == nil {
		values := valueCol.NonNullFloats()
		if len(values) == 0 {
			return nil
		}
		return &BoxPlotSpec{
			Column: valueCol.Name,
			Groups: []BoxGroup{boxGroup(valueCol.Name, values)},
		}
	}

	byGroup := make(map[string][]float64)
	n := valueCol.Len()
	if groupCol.Len() < n {
		n = groupCol.Len()
	}
	for i := 0; i < n; i++ {
		if valueCol.Valid[i] && groupCol.Valid[i] {
			label := groupCol.Strings[i]
			byGroup[label] = append(byGroup[label], valueCol.Floats[i])
		}
	}
	if len(byGroup) == 0 {
		return nil
	}

	// Keep the most populated groups, ties by label for determinism.
	labels := make([]string, 0, len(byGroup))
	for label := range byGroup {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if len(byGroup[labels[i]]) != len(byGroup[labels[j]]) {
			return len(byGroup[labels[i]]) > len(byGroup[labels[j]])
		}
		return labels[i] < labels[j]
	})
	if len(labels) > MaxBoxGroups {
		labels = labels[:MaxBoxGroups]
	}

	spec := &BoxPlotSpec{Column: valueCol.Name, GroupBy: groupCol.Name}
	for _, label := range labels {
		spec.Groups = append(spec.Groups, boxGroup(label, byGroup[label]))
	}
	return spec
}

func boxGroup(label string, values []float64) BoxGroup {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return BoxGroup{
		Label:  label,
		Min:    analysis.Round2(lo),
		Q25:    analysis.Round2(analysis.Quantile(values, 0.25)),
		Median: analysis.Round2(analysis.Quantile(values, 0.50)),
		Q75:    analysis.Round2(analysis.Quantile(values, 0.75)),
		Max:    analysis.Round2(hi),
		Count:  len(values),
	}
}
