package parser

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gobench/internal/benchmark"
	"gobench/internal/utils"

	"golang.org/x/tools/benchmark/parse"
)

// ParseSystemInfo reads the "key: value" header that go test prints before
// the first benchmark line.
func ParseSystemInfo(r io.Reader) (benchmark.SystemInfo, error) {
	var info benchmark.SystemInfo
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			break
		}
		value = strings.TrimSpace(value)
		switch key {
		case "goos":
			info.GoOS = value
		case "goarch":
			info.GoArch = value
		case "pkg":
			info.Pkg = value
		case "cpu":
			info.CPU = value
		}
	}
	return info, scanner.Err()
}

// BenchmarkName is a decoded go test benchmark name.
type BenchmarkName struct {
	Implementation string // "Basic Int Counter"
	Behavior       string // "read only"
	CPUCount       int
}

// ParseBenchmarkName decodes names of the form
// BenchmarkBasicIntCounter_read_only-8. A missing -N suffix means one CPU and
// a missing behavior is benchmark.DefaultBehavior.
func ParseBenchmarkName(raw string) BenchmarkName {
	name := BenchmarkName{CPUCount: 1, Behavior: benchmark.DefaultBehavior}

	if dash := strings.LastIndex(raw, "-"); dash > 0 {
		if cpu, err := strconv.Atoi(raw[dash+1:]); err == nil && cpu > 0 {
			name.CPUCount = cpu
			raw = raw[:dash]
		}
	}

	impl, behavior, ok := strings.Cut(raw, "_")
	if ok && behavior != "" {
		behavior = strings.NewReplacer("_", " ", "-", " ").Replace(behavior)
		name.Behavior = strings.Join(strings.Fields(behavior), " ")
	}

	words := utils.SplitCamelCase(strings.TrimPrefix(impl, "Benchmark"))
	name.Implementation = strings.Join(words, " ")
	if name.Implementation == "" {
		name.Implementation = impl
	}
	return name
}

// NamedVariation is a variation together with the implementation it
// belongs to.
type NamedVariation struct {
	Implementation string
	benchmark.Variation
}

// ParseVariations parses go test -bench output into variations, in the order
// the lines appeared.
func ParseVariations(r io.Reader) ([]NamedVariation, error) {
	set, err := parse.ParseSet(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse benchmark output: %w", err)
	}

	var all []*parse.Benchmark
	for _, runs := range set {
		all = append(all, runs...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Ord < all[j].Ord })

	variations := make([]NamedVariation, 0, len(all))
	for _, b := range all {
		name := ParseBenchmarkName(b.Name)
		v := benchmark.Variation{
			Name:              name.Behavior,
			N:                 b.N,
			NsPerOp:           b.NsPerOp,
			AllocedBytesPerOp: b.AllocedBytesPerOp,
			AllocsPerOp:       b.AllocsPerOp,
			MBPerS:            b.MBPerS,
			Measured:          b.Measured,
			Ord:               b.Ord,
			CPUCount:          name.CPUCount,
		}
		if v.NsPerOp > 0 {
			v.OpsPerSec = 1e9 / v.NsPerOp
		}
		variations = append(variations, NamedVariation{Implementation: name.Implementation, Variation: v})
	}
	return variations, nil
}
