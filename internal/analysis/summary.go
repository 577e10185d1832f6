package analysis

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"datalens/domain/dataset"
)

// Notice explains why a summary carries no statistics.
type Notice string

const (
	NoticeNone         Notice = ""
	NoticeNoData       Notice = "all values are null"
	NoticeNotSupported Notice = "data kind not supported for detailed statistics"
)

// Top-N bounds for textual summaries.
const (
	DefaultTopN = 10
	MinTopN     = 5
	MaxTopN     = 50
)

// Summary is the derived per-column record: basic info for every column,
// plus exactly one class-specific section when data is present. It is
// recomputed on demand and never stored.
type Summary struct {
	Column    string
	Kind      dataset.Kind
	Class     dataset.Class
	Count     int
	Unique    int
	NullCount int
	NullPct   float64
	Notice    Notice
	Numeric   *NumericStats
	Textual   *TextualStats
	Temporal  *TemporalStats
}

// HasData reports whether class-specific statistics were computed.
func (s *Summary) HasData() bool {
	return s.Numeric != nil || s.Textual != nil || s.Temporal != nil
}

// NumericStats holds descriptive statistics for a numeric column, rounded
// to two decimal places for display.
type NumericStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// ValueCount is one ranked frequency entry. Pct is relative to TOTAL row
// count, not non-null count.
type ValueCount struct {
	Value string
	Count int
	Pct   float64
}

// TextualStats holds the ranked top-N value frequencies.
type TextualStats struct {
	TopValues []ValueCount
}

// TemporalStats holds the date range of a temporal column. SpanDays is the
// whole-day difference truncated toward zero.
type TemporalStats struct {
	Earliest time.Time
	Latest   time.Time
	SpanDays int
}

// ClampTopN clamps n into the supported top-N range, applying the default
// when n is unset.
func ClampTopN(n int) int {
	if n == 0 {
		return DefaultTopN
	}
	if n < MinTopN {
		return MinTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

// Summarize computes the summary for a column. Nulls are excluded before
// any statistic; an all-null column yields a NoData notice and an
// unsupported kind yields a NotSupported notice. Summarize never fails:
// every column gets either statistics or an explicit notice.
func Summarize(col *dataset.Column, topN int) Summary {
	summary := Summary{
		Column:    col.Name,
		Kind:      col.Kind,
		Class:     dataset.Classify(col.Kind),
		Count:     col.Len(),
		Unique:    col.UniqueCount(),
		NullCount: col.NullCount(),
		NullPct:   Round1(col.NullPct()),
	}

	switch summary.Class {
	case dataset.ClassNumeric:
		values := col.NonNullFloats()
		if len(values) == 0 {
			summary.Notice = NoticeNoData
			return summary
		}
		summary.Numeric = summarizeNumeric(values)
		if summary.Numeric == nil {
			summary.Notice = NoticeNoData
		}

	case dataset.ClassTextual:
		values := col.NonNullStrings()
		if len(values) == 0 {
			summary.Notice = NoticeNoData
			return summary
		}
		summary.Textual = &TextualStats{
			TopValues: TopValues(values, ClampTopN(topN), col.Len()),
		}

	case dataset.ClassTemporal:
		values := col.NonNullTimes()
		if len(values) == 0 {
			summary.Notice = NoticeNoData
			return summary
		}
		summary.Temporal = summarizeTemporal(values)

	default:
		summary.Notice = NoticeNotSupported
	}

	return summary
}

// summarizeNumeric computes descriptive statistics over non-null values.
// Returns nil if any library call fails (empty input), which callers map
// to a NoData notice rather than an error.
func summarizeNumeric(values []float64) *NumericStats {
	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}

	// Sample standard deviation (n-1), matching the pandas .std() convention.
	// A single value has no sample deviation; report 0 instead of failing.
	stdDev := 0.0
	if len(values) > 1 {
		stdDev, err = stats.StandardDeviationSample(values)
		if err != nil {
			return nil
		}
	}

	min, err := stats.Min(values)
	if err != nil {
		return nil
	}

	max, err := stats.Max(values)
	if err != nil {
		return nil
	}

	return &NumericStats{
		Mean:   Round2(mean),
		StdDev: Round2(stdDev),
		Min:    Round2(min),
		Q25:    Round2(Quantile(values, 0.25)),
		Median: Round2(Quantile(values, 0.50)),
		Q75:    Round2(Quantile(values, 0.75)),
		Max:    Round2(max),
	}
}

func summarizeTemporal(values []time.Time) *TemporalStats {
	earliest := values[0]
	latest := values[0]
	for _, v := range values[1:] {
		if v.Before(earliest) {
			earliest = v
		}
		if v.After(latest) {
			latest = v
		}
	}
	return &TemporalStats{
		Earliest: earliest,
		Latest:   latest,
		SpanDays: int(latest.Sub(earliest).Hours() / 24),
	}
}

// TopValues ranks distinct values by descending frequency, truncated to
// topN. Ties break by ascending value so identical input always produces
// identical output. Percentages use totalRows as denominator.
func TopValues(values []string, topN, totalRows int) []ValueCount {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	ranked := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		pct := 0.0
		if totalRows > 0 {
			pct = Round1(float64(n) / float64(totalRows) * 100)
		}
		ranked = append(ranked, ValueCount{Value: v, Count: n, Pct: pct})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// SummarizeAll computes summaries for every column in dataset order.
func SummarizeAll(ds *dataset.Dataset, topN int) []Summary {
	summaries := make([]Summary, 0, len(ds.Columns))
	for i := range ds.Columns {
		summaries = append(summaries, Summarize(&ds.Columns[i], topN))
	}
	return summaries
}
