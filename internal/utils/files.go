package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BenchmarkDirs returns the immediate subdirectories of root that contain Go
// test files, sorted by name.
func BenchmarkDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmarks directory %s: %w", root, err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		matches, err := filepath.Glob(filepath.Join(dir, "*_test.go"))
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// WalkOverBenchmarks calls fn for every benchmark directory under root and
// stops at the first error.
func WalkOverBenchmarks(root string, fn func(dir string) error) error {
	dirs, err := BenchmarkDirs(root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := fn(dir); err != nil {
			return err
		}
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// CountPrefixedLines counts the lines of a file starting with prefix. A file
// that cannot be opened counts as zero lines.
func CountPrefixedLines(path, prefix string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), prefix) {
			count++
		}
	}
	return count
}
