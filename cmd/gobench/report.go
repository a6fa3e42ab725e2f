package main

import (
	"encoding/json"
	"fmt"

	"gobench/internal/benchmark"
	"gobench/internal/store"
	"gobench/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	reportCPUs     []int
	reportBehavior string
	reportWidth    int
)

var reportCmd = &cobra.Command{
	Use:   "report <slug>",
	Short: "Compare the implementations of a benchmark group",
	Long: `Loads <benchmarks>/<slug>/_bench.json and prints, for each CPU count, the
fastest and slowest implementation, the mean of the chosen metric and how
much faster or slower every implementation is than every other one. The
ranking is always computed at 1 CPU.

Formats: text (default), markdown, pretty (markdown rendered for the
terminal) and json.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().IntSliceVar(&reportCPUs, "cpu", nil, "CPU counts to report (default every CPU count measured)")
	reportCmd.Flags().StringVarP(&reportBehavior, "behavior", "b", "", "Only compare this behavior (default all behaviors)")
	reportCmd.Flags().IntVar(&reportWidth, "width", 100, "Word wrap width of the pretty format")
	reportCmd.Flags().StringP("format", "o", "text", "Output format: text, markdown, pretty or json")
	reportCmd.Flags().String("metric", "ns_per_op", "Metric to average: ns_per_op, bytes_per_op or allocs_per_op")

	viper.BindPFlag("format", reportCmd.Flags().Lookup("format"))
	viper.BindPFlag("metric", reportCmd.Flags().Lookup("metric"))
}

func runReport(cmd *cobra.Command, args []string) error {
	slug := args[0]
	group, err := store.LoadSlug(settings.BenchmarksDir, slug)
	if err != nil {
		return fmt.Errorf("failed to load benchmark group: %w", err)
	}

	metric, err := benchmark.ParseMetric(settings.Metric)
	if err != nil {
		return err
	}

	data, err := ui.Report(slug, group, ui.ReportOptions{
		CPUs:     reportCPUs,
		Behavior: reportBehavior,
		Metric:   metric,
	})
	if err != nil {
		return fmt.Errorf("failed to compare %s: %w", slug, err)
	}

	out := cmd.OutOrStdout()
	switch settings.Format {
	case "markdown":
		_, err = fmt.Fprint(out, ui.RenderMarkdown(data))
	case "pretty":
		var rendered string
		rendered, err = ui.RenderPretty(data, reportWidth)
		if err == nil {
			_, err = fmt.Fprint(out, rendered)
		}
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(data)
	default:
		err = ui.RenderText(out, data)
	}
	return err
}
