package benchmark

import (
	"fmt"
	"strings"
)

// Selector picks the variations an aggregate is computed over and the metric
// it averages. An empty Behavior matches every behavior; the zero Metric is
// NsPerOp.
type Selector struct {
	CPU      int    `json:"cpu"`
	Behavior string `json:"behavior,omitempty"`
	Metric   Metric `json:"-"`
}

// Baseline returns the single-CPU ns/op selector used for rankings.
func Baseline(behavior string) Selector {
	return Selector{CPU: 1, Behavior: behavior}
}

// Matches reports whether v belongs to the selection.
func (s Selector) Matches(v Variation) bool {
	if v.CPUCount != s.CPU {
		return false
	}
	return s.Behavior == "" || v.Name == s.Behavior
}

func (s Selector) String() string {
	if s.Behavior == "" {
		return CPULabel(s.CPU)
	}
	return fmt.Sprintf("%s, %s", CPULabel(s.CPU), s.Behavior)
}

// Metric is a measured quantity of a variation.
type Metric int

const (
	NsPerOp Metric = iota
	BytesPerOp
	AllocsPerOp
)

var metricNames = map[Metric]string{
	NsPerOp:     "ns_per_op",
	BytesPerOp:  "bytes_per_op",
	AllocsPerOp: "allocs_per_op",
}

var metricLabels = map[Metric]string{
	NsPerOp:     "Time",
	BytesPerOp:  "Memory",
	AllocsPerOp: "Allocations",
}

// ParseMetric accepts the metric names used in _bench.json consumers.
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return NsPerOp, nil
	}
	for m, name := range metricNames {
		if name == s {
			return m, nil
		}
	}
	return NsPerOp, fmt.Errorf("unknown metric %q (want ns_per_op, bytes_per_op or allocs_per_op)", s)
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("metric(%d)", int(m))
}

// Label is the human-readable name of the metric.
func (m Metric) Label() string {
	return metricLabels[m]
}

// Value extracts the metric from a variation.
func (m Metric) Value(v Variation) float64 {
	switch m {
	case BytesPerOp:
		return float64(v.AllocedBytesPerOp)
	case AllocsPerOp:
		return float64(v.AllocsPerOp)
	default:
		return v.NsPerOp
	}
}

// Format renders a metric value with its unit.
func (m Metric) Format(value float64) string {
	switch m {
	case BytesPerOp:
		return fmt.Sprintf("%s B/op", trimFloat(value))
	case AllocsPerOp:
		return fmt.Sprintf("%s allocs/op", trimFloat(value))
	default:
		return FormatNs(value)
	}
}
