package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"gobench/internal/metrics"
	"gobench/internal/parser"
	"gobench/internal/store"
	"gobench/internal/utils"

	"github.com/spf13/cobra"
)

var (
	generatePretty      bool
	generateArchive     bool
	generateMetricsFile string
)

// newHistoryFunc allows mocking the history store in tests.
var newHistoryFunc = store.NewHistory

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Parse benchmark output into _bench.json groups",
	Long: `Parses _bench.out, _meta.yml and the Go sources of every benchmark
directory into a benchmark group, collapses repeated runs into their median
and writes the result to _bench.json next to the output.

Directories that fail to parse are logged and skipped. With --archive every
generated group is also saved to the history store, and --metrics-file writes
dataset gauges in the Prometheus textfile format.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&generatePretty, "pretty", false, "Indent the generated JSON")
	generateCmd.Flags().BoolVar(&generateArchive, "archive", false, "Save every generated group to the history store")
	generateCmd.Flags().StringVar(&generateMetricsFile, "metrics-file", "", "Write dataset metrics to this file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	groups, err := parser.ProcessGroups(logger, settings.BenchmarksDir)
	if err != nil {
		return fmt.Errorf("failed to process benchmarks: %w", err)
	}

	var history store.History
	if generateArchive {
		history, err = newHistoryFunc(settings.Store)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer history.Close()
	}

	m := metrics.NewMetrics()
	for i := range groups {
		group := &groups[i]
		slug := filepath.Base(group.Dir)

		lines := utils.CountPrefixedLines(filepath.Join(group.Dir, parser.OutputFile), "Benchmark")
		parser.MedianVariations(group)

		path := filepath.Join(group.Dir, parser.JSONFile)
		size, err := store.WriteGroup(path, *group, generatePretty)
		if err != nil {
			return err
		}
		logger.Info("generated benchmark group",
			"slug", slug,
			"implementations", len(group.Benchmarks),
			"lines", lines,
			"variations", group.VariationCount(),
			"bytes", size)

		if history != nil {
			snap, err := history.Save(cmd.Context(), slug, *group)
			if err != nil {
				return fmt.Errorf("failed to archive %s: %w", slug, err)
			}
			logger.Debug("archived benchmark group", "slug", slug, "id", snap.ID)
		}
		m.Observe(*group)
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", slug, path)
	}

	if generateMetricsFile != "" {
		if err := m.WriteTextfile(generateMetricsFile); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d benchmark groups\n", len(groups))
	return nil
}
