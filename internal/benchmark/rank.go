package benchmark

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// ErrNoImplementations is returned when a ranking is requested over an empty
// implementation list.
var ErrNoImplementations = errors.New("benchmark: no implementations")

// Mean returns the arithmetic mean of metric over the variations selected by
// sel. The second result is false when no variation matches.
func Mean(impl Implementation, sel Selector, metric Metric) (float64, bool) {
	values := make([]float64, 0, len(impl.Variations))
	for _, v := range impl.Variations {
		if sel.Matches(v) {
			values = append(values, metric.Value(v))
		}
	}
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// MeanMetric is Mean with missing data reported as 0. Callers must read 0 as
// "no data" rather than as a real measurement.
func MeanMetric(impl Implementation, sel Selector, metric Metric) float64 {
	mean, _ := Mean(impl, sel, metric)
	return mean
}

// MeanNsPerOp is MeanMetric for the primary metric.
func MeanNsPerOp(impl Implementation, sel Selector) float64 {
	return MeanMetric(impl, sel, NsPerOp)
}

// FastSlow names the fastest and slowest implementation of a selection.
type FastSlow struct {
	Fastest string `json:"fastest"`
	Slowest string `json:"slowest"`
}

// FastestAndSlowest scans impls in order and keeps the first implementation
// seen on ties. "Fastest" is the lowest mean of sel.Metric. Implementations
// without data have a mean of 0 and take part in the scan as such.
func FastestAndSlowest(impls []Implementation, sel Selector) (FastSlow, error) {
	if len(impls) == 0 {
		return FastSlow{}, ErrNoImplementations
	}

	fastest, slowest := impls[0], impls[0]
	fastestMean := MeanMetric(fastest, sel, sel.Metric)
	slowestMean := fastestMean

	for _, impl := range impls[1:] {
		mean := MeanMetric(impl, sel, sel.Metric)
		if mean < fastestMean {
			fastest, fastestMean = impl, mean
		}
		if mean > slowestMean {
			slowest, slowestMean = impl, mean
		}
	}

	return FastSlow{Fastest: fastest.Name, Slowest: slowest.Name}, nil
}

// SortByPerformance returns a copy of impls ordered from fastest to slowest by
// their single-CPU mean of metric. The CPU count is fixed so that orderings do
// not move when a chart is switched to another CPU count. Equal means keep
// their input order.
func SortByPerformance(impls []Implementation, behavior string, metric Metric) []Implementation {
	sel := Baseline(behavior)

	type keyed struct {
		impl Implementation
		mean float64
	}
	entries := make([]keyed, len(impls))
	for i, impl := range impls {
		entries[i] = keyed{impl: impl, mean: MeanMetric(impl, sel, metric)}
	}

	slices.SortStableFunc(entries, func(a, b keyed) int {
		switch {
		case a.mean < b.mean:
			return -1
		case a.mean > b.mean:
			return 1
		default:
			return 0
		}
	})

	sorted := make([]Implementation, len(entries))
	for i, e := range entries {
		sorted[i] = e.impl
	}
	return sorted
}

// Ranked is one position of a performance ranking. Mean is in the unit of
// the ranking metric.
type Ranked struct {
	Position int     `json:"position"`
	Name     string  `json:"name"`
	Mean     float64 `json:"mean"`
	HasData  bool    `json:"hasData"`
}

// Rank numbers the SortByPerformance order starting at 1.
func Rank(impls []Implementation, behavior string, metric Metric) []Ranked {
	sel := Baseline(behavior)
	sorted := SortByPerformance(impls, behavior, metric)

	ranking := make([]Ranked, len(sorted))
	for i, impl := range sorted {
		mean, ok := Mean(impl, sel, metric)
		ranking[i] = Ranked{Position: i + 1, Name: impl.Name, Mean: mean, HasData: ok}
	}
	return ranking
}
