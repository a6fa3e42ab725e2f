package benchmark

// DefaultBehavior is the behavior name given to variations of benchmarks that
// do not declare one (BenchmarkFoo instead of BenchmarkFoo_read).
const DefaultBehavior = "run"

// Variation is one measured data point of an implementation: a single
// behavior at one CPU count and iteration count.
type Variation struct {
	Name              string  `json:"Name"` // Behavior name
	N                 int     `json:"N"`
	NsPerOp           float64 `json:"NsPerOp"`
	AllocedBytesPerOp uint64  `json:"AllocedBytesPerOp"`
	AllocsPerOp       uint64  `json:"AllocsPerOp"`
	MBPerS            float64 `json:"MBPerS"`
	Measured          int     `json:"Measured"`
	Ord               int     `json:"Ord"`
	CPUCount          int     `json:"CPUCount"`
	OpsPerSec         float64 `json:"OpsPerSec"`
}

// Implementation is one named competitor inside a benchmark group.
type Implementation struct {
	Name          string
	Description   string
	BenchmarkCode string
	Code          string
	Variations    []Variation
}

// SystemInfo holds the toolchain and hardware header of a benchmark run.
type SystemInfo struct {
	GoOS   string `json:"GoOS"`
	GoArch string `json:"GoArch"`
	Pkg    string `json:"Pkg"`
	CPU    string `json:"CPU"`
}

// BenchmarkGroup is the unit of comparison. Rankings and comparisons are
// only ever computed between the implementations of one group.
type BenchmarkGroup struct {
	Dir         string `json:"-"` // Source directory, not serialized
	Name        string
	Headline    string
	Description string
	System      SystemInfo
	Benchmarks  []Implementation
	Code        string
	Constants   string
}

// Meta mirrors the _meta.yml file kept next to each benchmark directory.
type Meta struct {
	Name         string               `json:"name" yaml:"name"`
	Headline     string               `json:"headline" yaml:"headline"`
	Description  string               `json:"description" yaml:"description"`
	Tags         []string             `json:"tags" yaml:"tags"`
	Contributors []string             `json:"contributors" yaml:"contributors"`
	Meta         []ImplementationMeta `json:"meta" yaml:"meta"`
}

// ImplementationMeta describes one implementation in _meta.yml.
type ImplementationMeta struct {
	Implementation string `json:"implementation" yaml:"implementation"`
	Description    string `json:"description" yaml:"description"`
}

// Summary is the lightweight listing entry for a benchmark group.
type Summary struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Headline    string   `json:"headline"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// VariationCount returns the number of variations across all implementations.
func (g BenchmarkGroup) VariationCount() int {
	total := 0
	for _, b := range g.Benchmarks {
		total += len(b.Variations)
	}
	return total
}

// Implementation looks up an implementation by name.
func (g BenchmarkGroup) Implementation(name string) (Implementation, bool) {
	for _, b := range g.Benchmarks {
		if b.Name == name {
			return b, true
		}
	}
	return Implementation{}, false
}
