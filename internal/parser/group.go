package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gobench/internal/benchmark"
	"gobench/internal/utils"
)

// Files kept in every benchmark directory.
const (
	OutputFile = "_bench.out"
	MetaFile   = "_meta.yml"
	JSONFile   = "_bench.json"
)

// ProcessGroup builds the BenchmarkGroup of one benchmark directory from its
// _bench.out, _meta.yml and Go sources.
func ProcessGroup(logger *slog.Logger, dir string) (benchmark.BenchmarkGroup, error) {
	group := benchmark.BenchmarkGroup{Dir: dir}
	outPath := filepath.Join(dir, OutputFile)

	f, err := os.Open(outPath)
	if err != nil {
		return benchmark.BenchmarkGroup{}, fmt.Errorf("failed to open benchmark output: %w", err)
	}
	defer f.Close()

	group.System, err = ParseSystemInfo(f)
	if err != nil {
		return benchmark.BenchmarkGroup{}, fmt.Errorf("failed to parse system info: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return benchmark.BenchmarkGroup{}, fmt.Errorf("failed to rewind benchmark output: %w", err)
	}

	variations, err := ParseVariations(f)
	if err != nil {
		return benchmark.BenchmarkGroup{}, err
	}

	meta, err := LoadMeta(dir)
	switch {
	case errors.Is(err, ErrNoMeta):
		logger.Warn("no meta file found", "path", filepath.Join(dir, MetaFile))
	case err != nil:
		return benchmark.BenchmarkGroup{}, err
	}
	group.Name = meta.Name
	group.Headline = meta.Headline
	group.Description = meta.Description

	if err := collectSources(logger, dir, &group); err != nil {
		return benchmark.BenchmarkGroup{}, err
	}

	byName := make(map[string][]benchmark.Variation)
	for _, v := range variations {
		logger.Debug("adding variation", "benchmark", v.Implementation, "behavior", v.Name, "cpuCount", v.CPUCount, "n", v.N)
		byName[v.Implementation] = append(byName[v.Implementation], v.Variation)
	}

	for name, vars := range byName {
		impl := benchmark.Implementation{
			Name:        name,
			Description: DescriptionFor(meta, name),
			Variations:  vars,
		}

		ident := strings.ReplaceAll(name, " ", "")
		if impl.Code, err = TypeCode(group.Code, ident); err != nil {
			return benchmark.BenchmarkGroup{}, fmt.Errorf("failed to get code of %s: %w", name, err)
		}
		if impl.BenchmarkCode, err = BenchmarkCode(group.Code, ident); err != nil {
			return benchmark.BenchmarkGroup{}, fmt.Errorf("failed to get benchmark code of %s: %w", name, err)
		}
		impl.Code = strings.TrimSpace(impl.Code)
		impl.BenchmarkCode = strings.TrimSpace(impl.BenchmarkCode)

		group.Benchmarks = append(group.Benchmarks, impl)
	}

	sort.Slice(group.Benchmarks, func(i, j int) bool {
		return group.Benchmarks[i].Name < group.Benchmarks[j].Name
	})
	return group, nil
}

func collectSources(logger *slog.Logger, dir string, group *benchmark.BenchmarkGroup) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		logger.Debug("found source file", "path", path)

		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		group.Code += CleanCode(string(src))

		consts, err := Constants(string(src))
		if err != nil {
			return fmt.Errorf("failed to get constants of %s: %w", path, err)
		}
		group.Constants += consts
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk source files: %w", err)
	}
	group.Code = strings.TrimSpace(group.Code)
	return nil
}

// ProcessGroups processes every benchmark directory under root. Directories
// that fail are logged and skipped.
func ProcessGroups(logger *slog.Logger, root string) ([]benchmark.BenchmarkGroup, error) {
	var groups []benchmark.BenchmarkGroup
	err := utils.WalkOverBenchmarks(root, func(dir string) error {
		logger.Debug("walking through benchmarks", "currentPath", dir)
		group, err := ProcessGroup(logger, dir)
		if err != nil {
			logger.Error("skipping benchmark group", "path", dir, "error", err)
			return nil
		}
		groups = append(groups, group)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}
