package benchmark

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
)

// Row is one x-axis point of a line chart. Values only holds the series that
// have a measurement at N; missing series are gaps, not zeros.
type Row struct {
	N      int
	Values map[string]float64
}

// Value returns the value of a series at this row.
func (r Row) Value(key string) (float64, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// MarshalJSON flattens the row into {"N": n, "<key>": value, ...} with keys
// in sorted order.
func (r Row) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	buf.WriteString(`{"N":`)
	buf.WriteString(strconv.Itoa(r.N))
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.Values[k])
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the flattened form written by MarshalJSON.
func (r *Row) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.N = int(raw["N"])
	delete(raw, "N")
	r.Values = raw
	return nil
}

// SeriesKey maps a chart key to the name shown in the legend.
type SeriesKey struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Series is a chart-ready table: one row per N, one column per key.
type Series struct {
	Keys []SeriesKey `json:"keys"`
	Rows []Row       `json:"rows"`
}

// cell accumulates duplicate measurements of one (N, series) point.
type cell struct {
	sum   float64
	count int
}

type table struct {
	ns    []int
	cells map[int]map[string]*cell
}

func newTable() *table {
	return &table{cells: make(map[int]map[string]*cell)}
}

func (t *table) add(n int, key string, value float64) {
	row, ok := t.cells[n]
	if !ok {
		row = make(map[string]*cell)
		t.cells[n] = row
		t.ns = append(t.ns, n)
	}
	c, ok := row[key]
	if !ok {
		c = &cell{}
		row[key] = c
	}
	c.sum += value
	c.count++
}

func (t *table) rows() []Row {
	slices.Sort(t.ns)
	rows := make([]Row, 0, len(t.ns))
	for _, n := range t.ns {
		values := make(map[string]float64, len(t.cells[n]))
		for key, c := range t.cells[n] {
			values[key] = c.sum / float64(c.count)
		}
		rows = append(rows, Row{N: n, Values: values})
	}
	return rows
}

// OverviewSeries builds the cross-implementation chart of sel.Metric: one row
// per distinct N seen at sel, one key per implementation. The legend lists
// every implementation, including ones without a single row at sel.
func OverviewSeries(impls []Implementation, sel Selector) Series {
	t := newTable()
	keys := make([]SeriesKey, 0, len(impls))
	for _, impl := range impls {
		key := ChartKey(impl.Name)
		keys = append(keys, SeriesKey{Key: key, Label: impl.Name})
		for _, v := range impl.Variations {
			if sel.Matches(v) {
				t.add(v.N, key, sel.Metric.Value(v))
			}
		}
	}
	return Series{Keys: keys, Rows: t.rows()}
}

// DetailSeries builds the CPU scaling chart of metric for one implementation:
// one key per CPU count, optionally restricted to one behavior.
func DetailSeries(impl Implementation, behavior string, metric Metric) Series {
	t := newTable()
	var cpus []int
	for _, v := range impl.Variations {
		if behavior != "" && v.Name != behavior {
			continue
		}
		if !slices.Contains(cpus, v.CPUCount) {
			cpus = append(cpus, v.CPUCount)
		}
		t.add(v.N, CPUKey(v.CPUCount), metric.Value(v))
	}

	slices.Sort(cpus)
	keys := make([]SeriesKey, 0, len(cpus))
	for _, cpu := range cpus {
		keys = append(keys, SeriesKey{Key: CPUKey(cpu), Label: CPULabel(cpu)})
	}
	return Series{Keys: keys, Rows: t.rows()}
}

// CombinedDetailSeries builds the cross-behavior chart of metric for one
// implementation at a fixed CPU count: one key per behavior.
func CombinedDetailSeries(impl Implementation, cpu int, metric Metric) Series {
	t := newTable()
	var names []string
	for _, v := range impl.Variations {
		if v.CPUCount != cpu {
			continue
		}
		if !slices.Contains(names, v.Name) {
			names = append(names, v.Name)
		}
		t.add(v.N, ChartKey(v.Name), metric.Value(v))
	}

	slices.Sort(names)
	keys := make([]SeriesKey, 0, len(names))
	for _, name := range names {
		keys = append(keys, SeriesKey{Key: ChartKey(name), Label: Capitalize(name)})
	}
	return Series{Keys: keys, Rows: t.rows()}
}
