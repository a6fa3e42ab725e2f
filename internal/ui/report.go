package ui

import (
	"gobench/internal/benchmark"
)

// ReportOptions selects what a report covers.
type ReportOptions struct {
	CPUs     []int  // Defaults to every CPU count in the group
	Behavior string // "" aggregates all behaviors
	Metric   benchmark.Metric
}

// MeanRow is the mean of the report metric for one implementation.
type MeanRow struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	HasData   bool    `json:"hasData"`
	Formatted string  `json:"formatted"`
}

// Section is the summary of a group at one selector.
type Section struct {
	Selector    benchmark.Selector                    `json:"selector"`
	Label       string                                `json:"label"`
	Fastest     string                                `json:"fastest"`
	Slowest     string                                `json:"slowest"`
	Means       []MeanRow                             `json:"means"`
	Comparisons []benchmark.ImplementationComparisons `json:"comparisons"`
}

// ReportData is everything the renderers print for one group.
type ReportData struct {
	Slug        string               `json:"slug"`
	Name        string               `json:"name"`
	Headline    string               `json:"headline"`
	Description string               `json:"description"`
	System      benchmark.SystemInfo `json:"system"`
	Metric      string               `json:"metric"`
	MetricLabel string               `json:"metricLabel"`
	Behavior    string               `json:"behavior,omitempty"`
	Behaviors   []string             `json:"behaviors"`
	Ranking     []benchmark.Ranked   `json:"ranking"`
	Sections    []Section            `json:"sections"`
}

// metric is the parsed form of Metric. Unknown names fall back to ns/op.
func (d ReportData) metric() benchmark.Metric {
	m, _ := benchmark.ParseMetric(d.Metric)
	return m
}

// Report runs the engine over group. It fails only when the group has no
// implementations.
func Report(slug string, group benchmark.BenchmarkGroup, opts ReportOptions) (ReportData, error) {
	impls := group.Benchmarks
	if len(impls) == 0 {
		return ReportData{}, benchmark.ErrNoImplementations
	}

	cpus := opts.CPUs
	if len(cpus) == 0 {
		cpus = benchmark.CPUCounts(impls)
	}
	if len(cpus) == 0 {
		cpus = []int{1}
	}

	data := ReportData{
		Slug:        slug,
		Name:        group.Name,
		Headline:    group.Headline,
		Description: group.Description,
		System:      group.System,
		Metric:      opts.Metric.String(),
		MetricLabel: opts.Metric.Label(),
		Behavior:    opts.Behavior,
		Behaviors:   benchmark.VariationNames(impls),
		Ranking:     benchmark.Rank(impls, opts.Behavior, opts.Metric),
	}

	ordered := benchmark.SortByPerformance(impls, opts.Behavior, opts.Metric)
	for _, cpu := range cpus {
		sel := benchmark.Selector{CPU: cpu, Behavior: opts.Behavior, Metric: opts.Metric}
		extremes, err := benchmark.FastestAndSlowest(impls, sel)
		if err != nil {
			return ReportData{}, err
		}

		section := Section{
			Selector:    sel,
			Label:       sel.String(),
			Fastest:     extremes.Fastest,
			Slowest:     extremes.Slowest,
			Comparisons: benchmark.Comparisons(ordered, sel),
		}
		for _, impl := range ordered {
			row := MeanRow{Name: impl.Name, Formatted: "n/a"}
			row.Value, row.HasData = benchmark.Mean(impl, sel, opts.Metric)
			if row.HasData {
				row.Formatted = opts.Metric.Format(row.Value)
			}
			section.Means = append(section.Means, row)
		}
		data.Sections = append(data.Sections, section)
	}
	return data, nil
}
