package parser

import (
	"sort"

	"gobench/internal/benchmark"
)

type variationKey struct {
	behavior string
	n        int
	cpu      int
}

// MedianVariations collapses the repeated runs of each (behavior, N, CPU)
// point of every implementation into one variation holding the medians.
// The first run of each point provides the remaining fields and the order.
func MedianVariations(group *benchmark.BenchmarkGroup) {
	for i, impl := range group.Benchmarks {
		grouped := make(map[variationKey][]benchmark.Variation)
		var order []variationKey
		for _, v := range impl.Variations {
			key := variationKey{behavior: v.Name, n: v.N, cpu: v.CPUCount}
			if _, ok := grouped[key]; !ok {
				order = append(order, key)
			}
			grouped[key] = append(grouped[key], v)
		}

		collapsed := make([]benchmark.Variation, 0, len(order))
		for _, key := range order {
			runs := grouped[key]
			med := runs[0]
			med.NsPerOp = median(runs, func(v benchmark.Variation) float64 { return v.NsPerOp })
			med.MBPerS = median(runs, func(v benchmark.Variation) float64 { return v.MBPerS })
			med.AllocedBytesPerOp = uint64(median(runs, func(v benchmark.Variation) float64 { return float64(v.AllocedBytesPerOp) }))
			med.AllocsPerOp = uint64(median(runs, func(v benchmark.Variation) float64 { return float64(v.AllocsPerOp) }))
			if med.NsPerOp > 0 {
				med.OpsPerSec = 1e9 / med.NsPerOp
			}
			collapsed = append(collapsed, med)
		}
		group.Benchmarks[i].Variations = collapsed
	}
}

func median(runs []benchmark.Variation, field func(benchmark.Variation) float64) float64 {
	values := make([]float64, len(runs))
	for i, v := range runs {
		values[i] = field(v)
	}
	sort.Float64s(values)

	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
