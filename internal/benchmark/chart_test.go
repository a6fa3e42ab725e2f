package benchmark

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowNs(rows []Row) []int {
	ns := make([]int, len(rows))
	for i, r := range rows {
		ns[i] = r.N
	}
	return ns
}

func TestOverviewSeries(t *testing.T) {
	impls := []Implementation{
		impl("Basic Counter",
			variation("run", 3000, 1, 30),
			variation("run", 1000, 1, 10),
			variation("run", 10000, 1, 100),
			variation("run", 2000, 4, 999),
		),
		impl("Atomic Counter",
			variation("run", 2000, 1, 20),
			variation("run", 1000, 1, 11),
		),
	}

	series := OverviewSeries(impls, Baseline(""))

	assert.Equal(t, []SeriesKey{
		{Key: "Basic_Counter", Label: "Basic Counter"},
		{Key: "Atomic_Counter", Label: "Atomic Counter"},
	}, series.Keys)
	assert.Equal(t, []int{1000, 2000, 3000, 10000}, rowNs(series.Rows))

	assert.Equal(t, map[string]float64{"Basic_Counter": 10, "Atomic_Counter": 11}, series.Rows[0].Values)

	_, ok := series.Rows[1].Value("Basic_Counter")
	assert.False(t, ok, "N=2000 only exists at 4 CPUs for Basic Counter")
	v, ok := series.Rows[1].Value("Atomic_Counter")
	assert.True(t, ok)
	assert.Equal(t, 20.0, v)

	assert.Equal(t, map[string]float64{"Basic_Counter": 100}, series.Rows[3].Values)
}

func TestOverviewSeries_BehaviorAndDuplicates(t *testing.T) {
	impls := []Implementation{
		impl("Map",
			variation("read", 1000, 1, 10),
			variation("read", 1000, 1, 30),
			variation("write", 1000, 1, 500),
			variation("write", 5000, 1, 700),
		),
	}

	read := OverviewSeries(impls, Selector{CPU: 1, Behavior: "read"})
	require.Len(t, read.Rows, 1)
	assert.Equal(t, 20.0, read.Rows[0].Values["Map"])

	all := OverviewSeries(impls, Baseline(""))
	assert.Equal(t, []int{1000, 5000}, rowNs(all.Rows))
}

func TestOverviewSeries_Empty(t *testing.T) {
	series := OverviewSeries([]Implementation{impl("A", variation("run", 1000, 2, 1))}, Baseline(""))
	assert.Empty(t, series.Rows)
	assert.Len(t, series.Keys, 1)
}

func TestOverviewSeries_LegendKeepsImplementationsWithoutRows(t *testing.T) {
	impls := []Implementation{
		impl("Mutex", variation("run", 1000, 1, 40)),
		impl("Sharded", variation("run", 1000, 8, 5)),
	}

	series := OverviewSeries(impls, Baseline(""))

	assert.Equal(t, []SeriesKey{
		{Key: "Mutex", Label: "Mutex"},
		{Key: "Sharded", Label: "Sharded"},
	}, series.Keys)
	require.Len(t, series.Rows, 1)
	assert.Equal(t, map[string]float64{"Mutex": 40}, series.Rows[0].Values)
}

func TestDetailSeries(t *testing.T) {
	b := impl("Mutex",
		variation("run", 2000, 8, 80),
		variation("run", 1000, 1, 10),
		variation("run", 1000, 8, 70),
		variation("run", 2000, 1, 20),
		variation("run", 3000, 2, 35),
		variation("other", 9000, 1, 1),
	)

	series := DetailSeries(b, "run", NsPerOp)
	assert.Equal(t, []SeriesKey{
		{Key: "cpu_1", Label: "1 CPU"},
		{Key: "cpu_2", Label: "2 CPUs"},
		{Key: "cpu_8", Label: "8 CPUs"},
	}, series.Keys)
	assert.Equal(t, []int{1000, 2000, 3000}, rowNs(series.Rows))
	assert.Equal(t, map[string]float64{"cpu_1": 10, "cpu_8": 70}, series.Rows[0].Values)
	assert.Equal(t, map[string]float64{"cpu_2": 35}, series.Rows[2].Values)

	all := DetailSeries(b, "", NsPerOp)
	assert.Equal(t, []int{1000, 2000, 3000, 9000}, rowNs(all.Rows))
}

func TestCombinedDetailSeries(t *testing.T) {
	b := impl("Sync Map",
		variation("write", 1000, 1, 50),
		variation("read", 1000, 1, 5),
		variation("read", 2000, 1, 6),
		variation("read only", 2000, 1, 4),
		variation("read", 1000, 4, 2),
	)

	series := CombinedDetailSeries(b, 1, NsPerOp)
	assert.Equal(t, []SeriesKey{
		{Key: "read", Label: "Read"},
		{Key: "read_only", Label: "Read only"},
		{Key: "write", Label: "Write"},
	}, series.Keys)
	assert.Equal(t, []int{1000, 2000}, rowNs(series.Rows))
	assert.Equal(t, map[string]float64{"read": 5, "write": 50}, series.Rows[0].Values)
	assert.Equal(t, map[string]float64{"read": 6, "read_only": 4}, series.Rows[1].Values)
}

func TestRow_JSON(t *testing.T) {
	row := Row{N: 1000, Values: map[string]float64{"b": 2.5, "a": 1}}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"N":1000,"a":1,"b":2.5}`, string(data))
	assert.Equal(t, `{"N":1000,"a":1,"b":2.5}`, string(data))

	var decoded Row
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, row, decoded)

	data, err = json.Marshal(Row{N: 5})
	require.NoError(t, err)
	assert.Equal(t, `{"N":5}`, string(data))
}

func TestChartKeyMatchesComparisonNames(t *testing.T) {
	impls := []Implementation{
		impl("Int Counter (with Mutex)", variation("run", 1000, 1, 10)),
		impl("atomic.Uint64", variation("run", 1000, 1, 5)),
	}

	series := OverviewSeries(impls, Baseline(""))
	for _, c := range Comparisons(impls, Baseline("")) {
		_, ok := series.Rows[0].Value(ChartKey(c.Name))
		assert.True(t, ok, c.Name)
	}
}

func TestSeries_Metric(t *testing.T) {
	b := impl("B",
		Variation{Name: "run", N: 1000, CPUCount: 1, NsPerOp: 50, AllocedBytesPerOp: 8, AllocsPerOp: 1},
		Variation{Name: "run", N: 1000, CPUCount: 2, NsPerOp: 60, AllocedBytesPerOp: 16, AllocsPerOp: 2},
	)

	overview := OverviewSeries([]Implementation{b}, Selector{CPU: 1, Metric: BytesPerOp})
	v, ok := overview.Rows[0].Value("B")
	require.True(t, ok)
	assert.Equal(t, 8.0, v)

	detail := DetailSeries(b, "", AllocsPerOp)
	v, ok = detail.Rows[0].Value("cpu_2")
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	combined := CombinedDetailSeries(b, 2, BytesPerOp)
	v, ok = combined.Rows[0].Value("run")
	require.True(t, ok)
	assert.Equal(t, 16.0, v)
}
