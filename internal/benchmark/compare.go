package benchmark

import (
	"fmt"
	"math"
)

// ComparisonEntry is the relative speed of one implementation against another.
// Ratio is rounded to one decimal and Percentage is derived from the unrounded
// ratio, so the two fields are rounded independently.
type ComparisonEntry struct {
	Other      string  `json:"other"`
	Ratio      float64 `json:"ratio"`
	Percentage int     `json:"percentage"`
	Faster     bool    `json:"faster"`
	// Applicable is false when either side has no data for the selection.
	Applicable bool `json:"applicable"`
}

// ImplementationComparisons holds every comparison of one implementation.
// Mean is in the unit of the selector metric.
type ImplementationComparisons struct {
	Name string            `json:"name"`
	Mean float64           `json:"mean"`
	Vs   []ComparisonEntry `json:"vs"`
}

// Compare computes how mine relates to other. faster is mine <= other.
func Compare(mine, other float64) ComparisonEntry {
	entry := ComparisonEntry{Faster: mine <= other}
	if mine == 0 || other == 0 {
		return entry
	}

	ratio := math.Max(mine, other) / math.Min(mine, other)
	entry.Applicable = true
	entry.Ratio = round1(ratio)
	entry.Percentage = int(math.Round((ratio - 1) * 100))
	return entry
}

// Comparisons compares every implementation with every other implementation
// of the group on the mean of sel.Metric under sel. An implementation is never
// compared with itself.
func Comparisons(impls []Implementation, sel Selector) []ImplementationComparisons {
	means := make([]float64, len(impls))
	for i, impl := range impls {
		means[i] = MeanMetric(impl, sel, sel.Metric)
	}

	result := make([]ImplementationComparisons, 0, len(impls))
	for i, impl := range impls {
		vs := make([]ComparisonEntry, 0, len(impls))
		for j, other := range impls {
			if other.Name == impl.Name {
				continue
			}
			entry := Compare(means[i], means[j])
			entry.Other = other.Name
			vs = append(vs, entry)
		}
		result = append(result, ImplementationComparisons{
			Name: impl.Name,
			Mean: means[i],
			Vs:   vs,
		})
	}
	return result
}

// Applicable returns the entries that carry a ratio.
func (c ImplementationComparisons) Applicable() []ComparisonEntry {
	var entries []ComparisonEntry
	for _, e := range c.Vs {
		if e.Applicable {
			entries = append(entries, e)
		}
	}
	return entries
}

// Verdict is "faster" or "slower".
func (e ComparisonEntry) Verdict() string {
	if e.Faster {
		return "faster"
	}
	return "slower"
}

// Sentence renders the entry the way it reads on a comparison page.
func (e ComparisonEntry) Sentence(name string) string {
	if !e.Applicable {
		return fmt.Sprintf("%s cannot be compared with %s", name, e.Other)
	}
	return fmt.Sprintf("%s is %sx (%d%%) %s than %s", name, trimFloat(e.Ratio), e.Percentage, e.Verdict(), e.Other)
}
