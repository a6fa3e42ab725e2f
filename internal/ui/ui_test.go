package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gobench/internal/benchmark"
	"gobench/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Plain output keeps assertions free of escape codes.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testGroup() benchmark.BenchmarkGroup {
	return benchmark.BenchmarkGroup{
		Name:     "Counter",
		Headline: "Counting in Go",
		System:   benchmark.SystemInfo{GoOS: "linux", GoArch: "amd64", CPU: "Test CPU"},
		Benchmarks: []benchmark.Implementation{
			{Name: "Slow Counter", Variations: []benchmark.Variation{
				{Name: "run", N: 1000, CPUCount: 1, NsPerOp: 40, AllocsPerOp: 2},
				{Name: "run", N: 1000, CPUCount: 2, NsPerOp: 30, AllocsPerOp: 2},
			}},
			{Name: "Fast Counter", Variations: []benchmark.Variation{
				{Name: "run", N: 1000, CPUCount: 1, NsPerOp: 10},
				{Name: "run", N: 1000, CPUCount: 2, NsPerOp: 6},
			}},
		},
	}
}

func TestReport(t *testing.T) {
	data, err := Report("counter", testGroup(), ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, "counter", data.Slug)
	assert.Equal(t, "ns_per_op", data.Metric)
	assert.Equal(t, "Time", data.MetricLabel)
	assert.Equal(t, []string{"run"}, data.Behaviors)

	require.Len(t, data.Ranking, 2)
	assert.Equal(t, "Fast Counter", data.Ranking[0].Name)
	assert.Equal(t, 1, data.Ranking[0].Position)

	require.Len(t, data.Sections, 2)
	one, two := data.Sections[0], data.Sections[1]
	assert.Equal(t, "1 CPU", one.Label)
	assert.Equal(t, "2 CPUs", two.Label)
	assert.Equal(t, "Fast Counter", one.Fastest)
	assert.Equal(t, "Slow Counter", one.Slowest)

	require.Len(t, one.Means, 2)
	assert.Equal(t, MeanRow{Name: "Fast Counter", Value: 10, HasData: true, Formatted: "10 ns"}, one.Means[0])

	require.Len(t, two.Comparisons, 2)
	vs := two.Comparisons[0].Vs[0]
	assert.Equal(t, "Slow Counter", vs.Other)
	assert.Equal(t, 5.0, vs.Ratio)
	assert.Equal(t, 400, vs.Percentage)
	assert.True(t, vs.Faster)
}

func TestReport_MetricAndCPUs(t *testing.T) {
	data, err := Report("counter", testGroup(), ReportOptions{CPUs: []int{1, 8}, Metric: benchmark.AllocsPerOp})
	require.NoError(t, err)

	require.Len(t, data.Sections, 2)
	assert.Equal(t, "Allocations", data.MetricLabel)
	assert.Equal(t, "0 allocs/op", data.Sections[0].Means[0].Formatted)
	assert.Equal(t, "2 allocs/op", data.Sections[0].Means[1].Formatted)

	eight := data.Sections[1]
	assert.Equal(t, "n/a", eight.Means[0].Formatted)
	assert.False(t, eight.Means[0].HasData)
	for _, c := range eight.Comparisons {
		for _, e := range c.Vs {
			assert.False(t, e.Applicable)
		}
	}
}

func TestReport_Empty(t *testing.T) {
	_, err := Report("empty", benchmark.BenchmarkGroup{Name: "Empty"}, ReportOptions{})
	assert.ErrorIs(t, err, benchmark.ErrNoImplementations)
}

func TestReport_JSONHasNoNaN(t *testing.T) {
	group := testGroup()
	group.Benchmarks = append(group.Benchmarks, benchmark.Implementation{Name: "No Data"})

	data, err := Report("counter", group, ReportOptions{})
	require.NoError(t, err)

	out, err := json.Marshal(data)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "NaN")
	assert.Contains(t, string(out), `"applicable":false`)
}

func TestRenderText(t *testing.T) {
	data, err := Report("counter", testGroup(), ReportOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, data))
	out := buf.String()

	assert.Contains(t, out, "Counter")
	assert.Contains(t, out, "Counting in Go")
	assert.Contains(t, out, "linux/amd64, Test CPU")
	assert.Contains(t, out, "Ranking (1 CPU)")
	assert.Contains(t, out, "Fastest: Fast Counter")
	assert.Contains(t, out, "Fast Counter is 4x (300%) faster than Slow Counter")
	assert.Contains(t, out, "Slow Counter is 5x (400%) slower than Fast Counter")
	assert.Contains(t, out, "10 ns")
	assert.Less(t, strings.Index(out, "1 CPU\n"), strings.Index(out, "2 CPUs"))
}

func TestRenderMarkdown(t *testing.T) {
	data, err := Report("counter", testGroup(), ReportOptions{})
	require.NoError(t, err)

	md := RenderMarkdown(data)
	assert.True(t, strings.HasPrefix(md, "# Counter\n\n> Counting in Go\n"))
	assert.Contains(t, md, "| 1 | [Fast Counter](#fast-counter) | 10 ns |")
	assert.Contains(t, md, "## 2 CPUs")
	assert.Contains(t, md, "- Fastest: **Fast Counter**")
	assert.Contains(t, md, "- Fast Counter is 4x (300%) faster than Slow Counter")
	assert.Equal(t, 1, strings.Count(md, `<a id="fast-counter"></a>`))
}

func TestRenderPretty(t *testing.T) {
	data, err := Report("counter", testGroup(), ReportOptions{})
	require.NoError(t, err)

	out, err := RenderPretty(data, 100)
	require.NoError(t, err)
	assert.Contains(t, out, "Counter")
	assert.Contains(t, out, "faster")
}

func TestRenderSeries(t *testing.T) {
	series := benchmark.Series{
		Keys: []benchmark.SeriesKey{{Key: "A", Label: "A"}, {Key: "B_C", Label: "B C"}},
		Rows: []benchmark.Row{
			{N: 1000, Values: map[string]float64{"A": 12.5, "B_C": 2500}},
			{N: 2000, Values: map[string]float64{"A": 11}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderSeries(&buf, series))
	out := buf.String()
	assert.Contains(t, out, "B C")
	assert.Contains(t, out, "1K")
	assert.Contains(t, out, "12.5 ns")
	assert.Contains(t, out, "2.5 µs")
	assert.Contains(t, out, "-")
}

func TestRenderSummariesAndSnapshots(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummaries(&buf, []benchmark.Summary{
		{Slug: "counter", Name: "Counter", Headline: "Counting", Tags: []string{"sync", "atomic"}},
	}))
	assert.Contains(t, buf.String(), "sync, atomic")

	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	buf.Reset()
	require.NoError(t, RenderSnapshots(&buf, []store.Snapshot{
		{ID: 7, Slug: "counter", Fastest: "Fast", Implementations: 2, Variations: 4, CreatedAt: now.Add(-3 * time.Hour)},
	}, now))
	assert.Contains(t, buf.String(), "3h ago")
	assert.Contains(t, buf.String(), "Fast")
}

func TestReport_MemoryMetricDrivesVerdicts(t *testing.T) {
	group := benchmark.BenchmarkGroup{
		Name: "Buffers",
		Benchmarks: []benchmark.Implementation{
			{Name: "A", Variations: []benchmark.Variation{
				{Name: "run", N: 1000, CPUCount: 1, NsPerOp: 10, AllocedBytesPerOp: 900},
			}},
			{Name: "B", Variations: []benchmark.Variation{
				{Name: "run", N: 1000, CPUCount: 1, NsPerOp: 50, AllocedBytesPerOp: 8},
			}},
		},
	}

	byTime, err := Report("buffers", group, ReportOptions{})
	require.NoError(t, err)
	assert.Equal(t, "A", byTime.Sections[0].Fastest)
	assert.Equal(t, "A", byTime.Ranking[0].Name)

	data, err := Report("buffers", group, ReportOptions{Metric: benchmark.BytesPerOp})
	require.NoError(t, err)
	assert.Equal(t, "Memory", data.MetricLabel)

	section := data.Sections[0]
	assert.Equal(t, "B", section.Fastest)
	assert.Equal(t, "A", section.Slowest)
	assert.Equal(t, "B", data.Ranking[0].Name)
	assert.Equal(t, 8.0, data.Ranking[0].Mean)
	assert.Equal(t, "B", section.Means[0].Name)
	assert.Equal(t, "8 B/op", section.Means[0].Formatted)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, data))
	out := buf.String()
	assert.Contains(t, out, "B is 112.5x (11150%) faster than A")
	assert.Contains(t, out, "A is 112.5x (11150%) slower than B")
	assert.NotContains(t, out, "A is 5x (400%) faster than B")
	assert.Contains(t, out, "8 B/op")
	assert.Contains(t, RenderMarkdown(data), "| 1 | [B](#b) | 8 B/op |")
}
