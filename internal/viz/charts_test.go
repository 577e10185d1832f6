package viz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/dataset"
	"datalens/internal/testkit"
)

func TestClampBins(t *testing.T) {
	assert.Equal(t, DefaultBins, ClampBins(0))
	assert.Equal(t, MinBins, ClampBins(3))
	assert.Equal(t, MaxBins, ClampBins(1000))
	assert.Equal(t, 42, ClampBins(42))
}

func TestHistogram(t *testing.T) {
	col := testkit.NumericColumn("v", []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, nil)

	spec := Histogram(&col, 10)

	require.NotNil(t, spec)
	assert.Len(t, spec.Bins, 10)

	counted := 0
	for _, b := range spec.Bins {
		counted += b.Count
	}
	assert.Equal(t, 11, counted, "every non-null value lands in exactly one bin")
	assert.InDelta(t, 0.0, spec.Bins[0].Lo, 1e-9)
	assert.InDelta(t, 10.0, spec.Bins[9].Hi, 1e-9)
	// Max value goes to the last (closed) bin.
	assert.GreaterOrEqual(t, spec.Bins[9].Count, 1)
}

func TestHistogram_SingleValueAndAllNull(t *testing.T) {
	constant := testkit.NumericColumn("c", []float64{5, 5, 5}, nil)
	spec := Histogram(&constant, 30)
	require.NotNil(t, spec)
	require.Len(t, spec.Bins, 1)
	assert.Equal(t, 3, spec.Bins[0].Count)

	empty := testkit.NumericColumn("e", []float64{1, 2}, []int{0, 1})
	assert.Nil(t, Histogram(&empty, 30))
}

func TestRankedBar(t *testing.T) {
	col := testkit.StringColumn("region",
		[]string{"north", "south", "north", "north", "south", "east"}, nil)

	spec := RankedBar(&col, 5)

	require.NotNil(t, spec)
	require.Len(t, spec.Points, 3)
	assert.Equal(t, "north", spec.Points[0].Value)
	assert.Equal(t, 3, spec.Points[0].Count)
	assert.Equal(t, 3, spec.MaxCount)
}

func TestTimeline_CountPerDay(t *testing.T) {
	day1 := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 2, 2, 17, 0, 0, 0, time.UTC)
	col := dataset.Column{
		Name:  "created_at",
		Kind:  dataset.KindTimestamp,
		Times: []time.Time{day1, day1.Add(time.Hour), day2, {}},
		Valid: []bool{true, true, true, false},
	}

	spec := Timeline(&col, nil)

	require.NotNil(t, spec)
	assert.Equal(t, TimelineCount, spec.Mode)
	require.Len(t, spec.Points, 2)
	assert.Equal(t, "2024-02-01", spec.Points[0].Date)
	assert.Equal(t, 2.0, spec.Points[0].Value)
	assert.Equal(t, "2024-02-02", spec.Points[1].Date)
	assert.Equal(t, 1.0, spec.Points[1].Value)
}

func TestTimeline_SumSkipsRowsMissingEitherValue(t *testing.T) {
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	dates := dataset.Column{
		Name:  "created_at",
		Kind:  dataset.KindTimestamp,
		Times: []time.Time{day, day, day},
		Valid: []bool{true, true, true},
	}
	values := testkit.NumericColumn("amount", []float64{10, 20, 40}, []int{2})

	spec := Timeline(&dates, &values)

	require.NotNil(t, spec)
	assert.Equal(t, TimelineSum, spec.Mode)
	require.Len(t, spec.Points, 1)
	assert.Equal(t, 30.0, spec.Points[0].Value)
}

func TestCorrelationHeatmap(t *testing.T) {
	a := testkit.NumericColumn("a", []float64{1, 2, 3, 4, 5}, nil)
	b := testkit.NumericColumn("b", []float64{2, 4, 6, 8, 10}, nil)
	ds := &dataset.Dataset{Rows: 5, Columns: []dataset.Column{a, b}}

	spec := CorrelationHeatmap(ds)

	require.NotNil(t, spec)
	assert.Len(t, spec.Cells, 4)
	for _, cell := range spec.Cells {
		if cell.X == cell.Y {
			assert.InDelta(t, 1.0, cell.R, 1e-9)
		} else {
			assert.InDelta(t, 1.0, cell.R, 1e-9, "perfectly linear columns correlate at 1")
		}
	}
}

func TestCorrelationHeatmap_CapsColumns(t *testing.T) {
	ds := &dataset.Dataset{Rows: 3}
	for i := 0; i < MaxHeatmapColumns+5; i++ {
		col := testkit.NumericColumn(string(rune('a'+i)), []float64{1, 2, 3}, nil)
		ds.Columns = append(ds.Columns, col)
	}

	spec := CorrelationHeatmap(ds)

	require.NotNil(t, spec)
	assert.True(t, spec.Truncated)
	assert.Len(t, spec.Columns, MaxHeatmapColumns)
	assert.Len(t, spec.Cells, MaxHeatmapColumns*MaxHeatmapColumns)
}

func TestCorrelationHeatmap_NeedsTwoNumericColumns(t *testing.T) {
	only := testkit.NumericColumn("a", []float64{1, 2}, nil)
	ds := &dataset.Dataset{Rows: 2, Columns: []dataset.Column{only}}
	assert.Nil(t, CorrelationHeatmap(ds))
}

func TestScatter_SamplesDeterministically(t *testing.T) {
	n := MaxScatterPoints + 2500
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}
	x := testkit.NumericColumn("x", values, nil)
	y := testkit.NumericColumn("y", values, nil)

	first := Scatter(&x, &y)
	require.NotNil(t, first)
	assert.True(t, first.Sampled)
	assert.Equal(t, n, first.TotalPairs)
	assert.Len(t, first.Points, MaxScatterPoints)

	// Fixed seed: identical input reproduces the identical sample.
	second := Scatter(&x, &y)
	assert.Equal(t, first.Points, second.Points)
}

func TestScatter_BelowCapKeepsEveryPair(t *testing.T) {
	x := testkit.NumericColumn("x", []float64{1, 2, 3, 4}, []int{1})
	y := testkit.NumericColumn("y", []float64{10, 20, 30, 40}, []int{3})

	spec := Scatter(&x, &y)

	require.NotNil(t, spec)
	assert.False(t, spec.Sampled)
	// Rows 1 and 3 are null on one side each.
	assert.Equal(t, []ScatterPoint{{X: 1, Y: 10}, {X: 3, Y: 30}}, spec.Points)
}

func TestBoxPlot_GroupedWithCap(t *testing.T) {
	kit := testkit.New()
	ds := kit.OrdersDataset(400)

	spec := BoxPlot(ds.Column("amount"), ds.Column("region"))

	require.NotNil(t, spec)
	assert.Equal(t, "region", spec.GroupBy)
	assert.LessOrEqual(t, len(spec.Groups), MaxBoxGroups)
	for _, g := range spec.Groups {
		assert.LessOrEqual(t, g.Min, g.Q25)
		assert.LessOrEqual(t, g.Q25, g.Median)
		assert.LessOrEqual(t, g.Median, g.Q75)
		assert.LessOrEqual(t, g.Q75, g.Max)
	}
}

func TestBoxPlot_Ungrouped(t *testing.T) {
	col := testkit.NumericColumn("v", []float64{1, 2, 3, 4, 5}, nil)

	spec := BoxPlot(&col, nil)

	require.NotNil(t, spec)
	require.Len(t, spec.Groups, 1)
	assert.Equal(t, 3.0, spec.Groups[0].Median)
}

func TestBoxPlot_NonTextualGroupFallsBackToSingleGroup(t *testing.T) {
	value := testkit.NumericColumn("amount", []float64{1, 2, 3, 4, 5}, nil)
	group := testkit.NumericColumn("order_id", []float64{1, 2, 3, 4, 5}, nil)

	spec := BoxPlot(&value, &group)

	require.NotNil(t, spec)
	assert.Empty(t, spec.GroupBy)
	require.Len(t, spec.Groups, 1)
	assert.Equal(t, 3.0, spec.Groups[0].Median)

	// A temporal group column is ignored the same way.
	kit := testkit.New()
	ds := kit.OrdersDataset(50)
	spec = BoxPlot(ds.Column("amount"), ds.Column("created_at"))
	require.NotNil(t, spec)
	assert.Empty(t, spec.GroupBy)
	require.Len(t, spec.Groups, 1)
}
