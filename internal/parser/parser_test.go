package parser

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gobench/internal/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const benchOutput = `goos: linux
goarch: amd64
pkg: github.com/example/benchmarks/counter
cpu: AMD Ryzen 9 5950X 16-Core Processor
BenchmarkBasicIntCounter_run          	    1000	        12.50 ns/op	       0 B/op	       0 allocs/op
BenchmarkBasicIntCounter_run-2        	    1000	        14.00 ns/op	       0 B/op	       0 allocs/op
BenchmarkAtomicUintCounter_run        	    1000	        25.00 ns/op	       8 B/op	       1 allocs/op
BenchmarkAtomicUintCounter_run-2      	    1000	        30.00 ns/op	       8 B/op	       1 allocs/op
BenchmarkAtomicUintCounter_run        	    2000	        24.00 ns/op	       8 B/op	       1 allocs/op
PASS
ok  	github.com/example/benchmarks/counter	0.012s
`

const counterSource = `package counter

import (
	"sync/atomic"
	"testing"
)

const iterations = 10

type BasicIntCounter struct {
	count int
}

func (c *BasicIntCounter) Increment() {
	c.count++
}

type AtomicUintCounter struct {
	count atomic.Uint64
}

func (c *AtomicUintCounter) Increment() {
	c.count.Add(1)
}

func BenchmarkBasicIntCounter_run(b *testing.B) {
	var c BasicIntCounter
	for i := 0; i < b.N; i++ {
		c.Increment()
	}
}

func BenchmarkAtomicUintCounter_run(b *testing.B) {
	var c AtomicUintCounter
	for i := 0; i < b.N; i++ {
		c.Increment()
	}
}
`

const counterMeta = `name: Counter
headline: Counting in Go
description: Different ways to increment a counter.
tags: [sync, atomic]
contributors: [gopher]
meta:
  - implementation: Basic Int Counter
    description: A plain int.
  - implementation: Atomic Uint Counter
    description: An atomic.Uint64.
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "counter")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestParseSystemInfo(t *testing.T) {
	info, err := ParseSystemInfo(strings.NewReader(benchOutput))
	require.NoError(t, err)
	assert.Equal(t, benchmark.SystemInfo{
		GoOS:   "linux",
		GoArch: "amd64",
		Pkg:    "github.com/example/benchmarks/counter",
		CPU:    "AMD Ryzen 9 5950X 16-Core Processor",
	}, info)
}

func TestParseBenchmarkName(t *testing.T) {
	tests := []struct {
		raw  string
		want BenchmarkName
	}{
		{"BenchmarkBasicIntCounter_run-8", BenchmarkName{"Basic Int Counter", "run", 8}},
		{"BenchmarkBasicIntCounter_run", BenchmarkName{"Basic Int Counter", "run", 1}},
		{"BenchmarkSyncMap_read_only-16", BenchmarkName{"Sync Map", "read only", 16}},
		{"BenchmarkSyncMap_read-heavy-4", BenchmarkName{"Sync Map", "read heavy", 4}},
		{"BenchmarkPlain-2", BenchmarkName{"Plain", benchmark.DefaultBehavior, 2}},
		{"BenchmarkPlain", BenchmarkName{"Plain", benchmark.DefaultBehavior, 1}},
		{"BenchmarkHTTPServer_get-4", BenchmarkName{"HTTP Server", "get", 4}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBenchmarkName(tt.raw))
		})
	}
}

func TestParseVariations(t *testing.T) {
	variations, err := ParseVariations(strings.NewReader(benchOutput))
	require.NoError(t, err)
	require.Len(t, variations, 5)

	first := variations[0]
	assert.Equal(t, "Basic Int Counter", first.Implementation)
	assert.Equal(t, "run", first.Name)
	assert.Equal(t, 1, first.CPUCount)
	assert.Equal(t, 1000, first.N)
	assert.Equal(t, 12.5, first.NsPerOp)
	assert.InDelta(t, 8e7, first.OpsPerSec, 1e-6)

	atomic := variations[3]
	assert.Equal(t, "Atomic Uint Counter", atomic.Implementation)
	assert.Equal(t, 2, atomic.CPUCount)
	assert.Equal(t, uint64(8), atomic.AllocedBytesPerOp)
	assert.Equal(t, uint64(1), atomic.AllocsPerOp)

	for i := 1; i < len(variations); i++ {
		assert.Less(t, variations[i-1].Ord, variations[i].Ord)
	}
}

func TestLoadMeta(t *testing.T) {
	dir := writeFixture(t, map[string]string{MetaFile: counterMeta})

	meta, err := LoadMeta(dir)
	require.NoError(t, err)
	assert.Equal(t, "Counter", meta.Name)
	assert.Equal(t, []string{"sync", "atomic"}, meta.Tags)
	assert.Equal(t, "A plain int.", DescriptionFor(meta, "Basic Int Counter"))
	assert.Equal(t, "", DescriptionFor(meta, "Unknown"))
}

func TestLoadMeta_Missing(t *testing.T) {
	dir := writeFixture(t, nil)

	meta, err := LoadMeta(dir)
	assert.ErrorIs(t, err, ErrNoMeta)
	assert.Equal(t, "counter", meta.Name)
}

func TestLoadMeta_Invalid(t *testing.T) {
	dir := writeFixture(t, map[string]string{MetaFile: "name: [unclosed"})

	_, err := LoadMeta(dir)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMeta)
}

func TestProcessGroup(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		OutputFile:        benchOutput,
		MetaFile:          counterMeta,
		"counter_test.go": counterSource,
	})

	group, err := ProcessGroup(discardLogger(), dir)
	require.NoError(t, err)

	assert.Equal(t, "Counter", group.Name)
	assert.Equal(t, "Counting in Go", group.Headline)
	assert.Equal(t, "linux", group.System.GoOS)
	assert.Contains(t, group.Constants, "const iterations = 10")
	assert.NotContains(t, group.Code, "import")

	require.Len(t, group.Benchmarks, 2)
	atomic, basic := group.Benchmarks[0], group.Benchmarks[1]
	assert.Equal(t, "Atomic Uint Counter", atomic.Name)
	assert.Equal(t, "Basic Int Counter", basic.Name)
	assert.Equal(t, "An atomic.Uint64.", atomic.Description)
	assert.Len(t, atomic.Variations, 3)
	assert.Len(t, basic.Variations, 2)

	assert.Contains(t, basic.Code, "type BasicIntCounter struct")
	assert.Contains(t, basic.Code, "func (c *BasicIntCounter) Increment()")
	assert.NotContains(t, basic.Code, "AtomicUintCounter")
	assert.Contains(t, basic.BenchmarkCode, "func BenchmarkBasicIntCounter_run(b *testing.B)")
	assert.NotContains(t, basic.BenchmarkCode, "BenchmarkAtomicUintCounter_run")
}

func TestProcessGroup_NoOutput(t *testing.T) {
	dir := writeFixture(t, map[string]string{"counter_test.go": counterSource})

	_, err := ProcessGroup(discardLogger(), dir)
	assert.Error(t, err)
}

func TestProcessGroups_SkipsBrokenGroups(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "counter")
	broken := filepath.Join(root, "broken")
	require.NoError(t, os.MkdirAll(good, 0755))
	require.NoError(t, os.MkdirAll(broken, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(good, OutputFile), []byte(benchOutput), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(good, "counter_test.go"), []byte(counterSource), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(broken, "broken_test.go"), []byte(counterSource), 0644))

	groups, err := ProcessGroups(discardLogger(), root)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "counter", groups[0].Name)
}

func TestMedianVariations(t *testing.T) {
	group := benchmark.BenchmarkGroup{
		Benchmarks: []benchmark.Implementation{{
			Name: "A",
			Variations: []benchmark.Variation{
				{Name: "run", N: 1000, CPUCount: 1, NsPerOp: 30, AllocsPerOp: 1, Ord: 0},
				{Name: "run", N: 2000, CPUCount: 1, NsPerOp: 50, Ord: 1},
				{Name: "run", N: 1000, CPUCount: 1, NsPerOp: 10, AllocsPerOp: 3, Ord: 2},
				{Name: "run", N: 1000, CPUCount: 1, NsPerOp: 20, AllocsPerOp: 2, Ord: 3},
				{Name: "run", N: 2000, CPUCount: 1, NsPerOp: 70, Ord: 4},
			},
		}},
	}

	MedianVariations(&group)

	vars := group.Benchmarks[0].Variations
	require.Len(t, vars, 2)
	assert.Equal(t, 1000, vars[0].N)
	assert.Equal(t, 20.0, vars[0].NsPerOp)
	assert.Equal(t, uint64(2), vars[0].AllocsPerOp)
	assert.Equal(t, 0, vars[0].Ord)
	assert.InDelta(t, 5e7, vars[0].OpsPerSec, 1e-6)
	assert.Equal(t, 2000, vars[1].N)
	assert.Equal(t, 60.0, vars[1].NsPerOp)
}
