package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ============================================================================
// AGGREGATORS — Grouping, Column Selection, Aggregation and Sorting
// ============================================================================
// GroupBy and Column read through RecordView; the numeric reducers take a
// plain []float64 so each primitive can be tested on its own.
// Reducers return NaN on empty input; Sum returns 0.
// ============================================================================

// Aggregation names accepted by Aggregate and GroupAndAggregate.
const (
	AggSum    = "sum"
	AggMean   = "mean"
	AggMedian = "median"
	AggStd    = "std"
	AggMax    = "max"
	AggMin    = "min"
	AggCount  = "count"
)

// GroupAndAggregate is the grouped pipeline: group → aggregate → sort → limit.
func GroupAndAggregate(
	view RecordView,
	dimension string,
	measure string,
	aggregation string,
	sortBy string,
	limit int,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	groups := GroupBy(view, dimension)
	for i := range groups {
		groups[i].Value = Aggregate(ColumnValues(groups[i].View, measure), aggregation)
	}

	SortGroups(groups, sortBy)

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// ============================================================================
// GROUPING & COLUMNS
// ============================================================================

// GroupBy partitions a view by one dimension. Groups come back in first-seen
// order; each carries a zero-copy sub-view of its records.
func GroupBy(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			Count: len(grouped[key]),
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ColumnValues returns every value of a measure, in view order.
func ColumnValues(view RecordView, measure string) []float64 {
	out := make([]float64, view.Len())
	for i := range out {
		out[i] = view.Measure(i, measure)
	}
	return out
}

// ============================================================================
// REDUCERS
// ============================================================================

// Aggregate reduces values with the named aggregation.
func Aggregate(values []float64, aggregation string) float64 {
	switch aggregation {
	case AggSum:
		return Sum(values)
	case AggMean:
		return Mean(values)
	case AggMedian:
		return Median(values)
	case AggStd:
		return StdDev(values)
	case AggMax:
		return Max(values)
	case AggMin:
		return Min(values)
	case AggCount:
		return float64(len(values))
	default:
		return Sum(values)
	}
}

// Sum adds values. The sum of nothing is 0.
func Sum(values []float64) float64 {
	return floats.Sum(values)
}

// Mean is the arithmetic mean.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// StdDev is the sample (n-1) standard deviation. Fewer than two values is NaN.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(values, nil)
}

// Median is the 0.5 quantile: the middle value, or the mean of the two middle values.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Max returns the largest value.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return floats.Max(values)
}

// Min returns the smallest value.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return floats.Min(values)
}

// Quantile returns the q-th quantile (0 <= q <= 1) by linear interpolation
// between order statistics at position (n-1)*q. The input is not modified.
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 || math.IsNaN(q) || q < 0 || q > 1 {
		return math.NaN()
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := float64(n-1) * q
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if lo >= n-1 || frac == 0 {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Round rounds to the given number of decimal places. Exact halves go to the
// even neighbour: Round(6.25, 1) is 6.2.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts groups by the specified mode. Sorting is stable so equal
// values keep their grouping order.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case "value_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case "value_asc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	case "label_asc", "alpha_asc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key) })
	case "label_desc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) > strings.ToLower(groups[j].Key) })
	default:
		// preserve grouping order
	}
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatNumber prints the shortest decimal form of v, trimmed to six places
// so interpolation noise does not leak into tables. NaN prints as "NaN".
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(Round(v, 6), 'f', -1, 64)
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// LabelForAggregation returns a human-readable label for an aggregation type.
func LabelForAggregation(aggregation string) string {
	switch aggregation {
	case AggSum:
		return "Total"
	case AggCount:
		return "Count"
	case AggMean:
		return "Mean"
	case AggMedian:
		return "Median"
	case AggStd:
		return "Std Dev"
	case AggMax:
		return "Maximum"
	case AggMin:
		return "Minimum"
	default:
		return "Value"
	}
}
