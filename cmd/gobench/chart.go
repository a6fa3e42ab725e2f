package main

import (
	"encoding/json"
	"fmt"

	"gobench/internal/benchmark"
	"gobench/internal/store"
	"gobench/internal/ui"

	"github.com/spf13/cobra"
)

var (
	chartMode     string
	chartImpl     string
	chartCPU      int
	chartBehavior string
	chartFormat   string
	chartMetric   string
)

var chartCmd = &cobra.Command{
	Use:   "chart <slug>",
	Short: "Print chart series of a benchmark group",
	Long: `Projects the measurements of a benchmark group into chart rows keyed by N.

Modes:
  overview  one column per implementation at --cpu and --behavior
  detail    one column per CPU count for --impl at --behavior
  combined  one column per behavior for --impl at --cpu`,
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chartMode, "mode", "m", "overview", "Projection: overview, detail or combined")
	chartCmd.Flags().StringVarP(&chartImpl, "impl", "i", "", "Implementation of the detail and combined modes")
	chartCmd.Flags().IntVar(&chartCPU, "cpu", 1, "CPU count of the overview and combined modes")
	chartCmd.Flags().StringVarP(&chartBehavior, "behavior", "b", "", "Behavior of the overview and detail modes (default all)")
	chartCmd.Flags().StringVarP(&chartFormat, "format", "o", "json", "Output format: json or text")
	chartCmd.Flags().StringVar(&chartMetric, "metric", "", "Metric to plot: ns_per_op, bytes_per_op or allocs_per_op (default the configured metric)")
}

func runChart(cmd *cobra.Command, args []string) error {
	group, err := store.LoadSlug(settings.BenchmarksDir, args[0])
	if err != nil {
		return fmt.Errorf("failed to load benchmark group: %w", err)
	}

	name := chartMetric
	if name == "" {
		name = settings.Metric
	}
	metric, err := benchmark.ParseMetric(name)
	if err != nil {
		return err
	}

	series, err := projectSeries(group, metric)
	if err != nil {
		return err
	}

	switch chartFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(series)
	case "text":
		return ui.RenderSeries(cmd.OutOrStdout(), series)
	default:
		return fmt.Errorf("unknown chart format: %s", chartFormat)
	}
}

func projectSeries(group benchmark.BenchmarkGroup, metric benchmark.Metric) (benchmark.Series, error) {
	if chartMode == "overview" {
		sel := benchmark.Selector{CPU: chartCPU, Behavior: chartBehavior, Metric: metric}
		return benchmark.OverviewSeries(group.Benchmarks, sel), nil
	}
	if chartMode != "detail" && chartMode != "combined" {
		return benchmark.Series{}, fmt.Errorf("unknown chart mode: %s", chartMode)
	}

	if chartImpl == "" {
		return benchmark.Series{}, fmt.Errorf("--impl is required in %s mode", chartMode)
	}
	impl, ok := group.Implementation(chartImpl)
	if !ok {
		return benchmark.Series{}, fmt.Errorf("implementation %q not found in %s", chartImpl, group.Name)
	}

	if chartMode == "detail" {
		return benchmark.DetailSeries(impl, chartBehavior, metric), nil
	}
	return benchmark.CombinedDetailSeries(impl, chartCPU, metric), nil
}
