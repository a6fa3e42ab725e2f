package metrics

import (
	"fmt"

	"gobench/internal/benchmark"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics represents the dataset gauges written after generate
type Metrics struct {
	registry *prometheus.Registry

	Groups          prometheus.Gauge
	Implementations *prometheus.GaugeVec
	Variations      *prometheus.GaugeVec
	FastestNsPerOp  *prometheus.GaugeVec
	Behaviors       *prometheus.GaugeVec
}

// NewMetrics creates the gauges in a private registry so repeated calls and
// tests never collide on the global one.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Groups = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gobench_groups",
			Help: "Number of benchmark groups generated",
		},
	)

	m.Implementations = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gobench_implementations",
			Help: "Number of implementations per benchmark group",
		},
		[]string{"group"},
	)

	m.Variations = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gobench_variations",
			Help: "Number of measured variations per benchmark group",
		},
		[]string{"group"},
	)

	m.FastestNsPerOp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gobench_fastest_ns_per_op",
			Help: "Mean ns/op at 1 CPU of the fastest implementation per group",
		},
		[]string{"group", "implementation"},
	)

	m.Behaviors = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gobench_behaviors",
			Help: "Number of distinct behaviors per benchmark group",
		},
		[]string{"group"},
	)

	m.registry.MustRegister(
		m.Groups,
		m.Implementations,
		m.Variations,
		m.FastestNsPerOp,
		m.Behaviors,
	)

	return m
}

// Observe records one generated group.
func (m *Metrics) Observe(group benchmark.BenchmarkGroup) {
	m.Groups.Inc()

	impls := group.Benchmarks
	m.Implementations.WithLabelValues(group.Name).Set(float64(len(impls)))
	m.Variations.WithLabelValues(group.Name).Set(float64(group.VariationCount()))
	m.Behaviors.WithLabelValues(group.Name).Set(float64(len(benchmark.VariationNames(impls))))

	sel := benchmark.Baseline("")
	extremes, err := benchmark.FastestAndSlowest(impls, sel)
	if err != nil {
		return
	}
	fastest, _ := group.Implementation(extremes.Fastest)
	m.FastestNsPerOp.WithLabelValues(group.Name, fastest.Name).Set(benchmark.MeanNsPerOp(fastest, sel))
}

// Gatherer exposes the private registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the gauges in the node exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
