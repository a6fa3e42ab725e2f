package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gobench/internal/benchmark"
	"gobench/internal/parser"
	"gobench/internal/utils"
)

// ErrNotFound is returned when a benchmark group or snapshot does not exist.
var ErrNotFound = errors.New("not found")

// MarshalGroup encodes a group the way it is written to _bench.json.
func MarshalGroup(group benchmark.BenchmarkGroup, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(group, "", "  ")
	}
	return json.Marshal(group)
}

// WriteGroup writes group as JSON to path and returns the number of bytes
// written.
func WriteGroup(path string, group benchmark.BenchmarkGroup, pretty bool) (int, error) {
	data, err := MarshalGroup(group, pretty)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal group %s: %w", group.Name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(data), nil
}

// LoadGroup reads a _bench.json file.
func LoadGroup(path string) (benchmark.BenchmarkGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return benchmark.BenchmarkGroup{}, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return benchmark.BenchmarkGroup{}, err
	}

	var group benchmark.BenchmarkGroup
	if err := json.Unmarshal(data, &group); err != nil {
		return benchmark.BenchmarkGroup{}, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	group.Dir = filepath.Dir(path)
	return group, nil
}

// LoadSlug reads the group of the benchmark directory root/slug.
func LoadSlug(root, slug string) (benchmark.BenchmarkGroup, error) {
	return LoadGroup(filepath.Join(root, slug, parser.JSONFile))
}

// ListSlugs returns the names of the directories under root that contain a
// generated _bench.json, sorted.
func ListSlugs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmarks directory %s: %w", root, err)
	}

	var slugs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if utils.FileExists(filepath.Join(root, entry.Name(), parser.JSONFile)) {
			slugs = append(slugs, entry.Name())
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Summaries lists every generated group under root. Name, headline and
// description come from the group; tags come from _meta.yml.
func Summaries(root string) ([]benchmark.Summary, error) {
	slugs, err := ListSlugs(root)
	if err != nil {
		return nil, err
	}

	summaries := make([]benchmark.Summary, 0, len(slugs))
	for _, slug := range slugs {
		group, err := LoadSlug(root, slug)
		if err != nil {
			return nil, err
		}
		meta, err := parser.LoadMeta(filepath.Join(root, slug))
		if err != nil && !errors.Is(err, parser.ErrNoMeta) {
			return nil, err
		}

		tags := meta.Tags
		if tags == nil {
			tags = []string{}
		}
		summaries = append(summaries, benchmark.Summary{
			Slug:        slug,
			Name:        group.Name,
			Headline:    group.Headline,
			Description: group.Description,
			Tags:        tags,
		})
	}
	return summaries, nil
}
