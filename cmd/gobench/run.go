package main

import (
	"fmt"
	"log/slog"

	"gobench/internal/runner"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	runForce bool
	runCPUs  []int
)

// newRunnerFunc allows mocking the benchmark executor in tests.
var newRunnerFunc = func() runner.Runner { return runner.NewGoRunner() }

var runCmd = &cobra.Command{
	Use:   "run [dir...]",
	Short: "Run the benchmarks and write _bench.out files",
	Long: `Executes 'go test -bench' in every benchmark directory once per benchtime,
repeated --count times, across the CPU ladder 1,2,4,... up to the number of
CPUs. The combined output is written to _bench.out in each directory.

Directories that already have a _bench.out are skipped unless --force is set.
With arguments, only the given directories are run.`,
	RunE: runBenchmarks,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&runForce, "force", "f", false, "Re-run directories that already have output")
	runCmd.Flags().IntSliceVar(&runCPUs, "cpu", nil, "CPU counts to run with (default 1,2,4,... up to GOMAXPROCS)")
	runCmd.Flags().Int("count", 10, "Number of repetitions of the benchtime sweep")
	runCmd.Flags().StringSlice("benchtime", runner.DefaultBenchtimes, "Benchtimes to run, e.g. 1000x or 1s")
	runCmd.Flags().Duration("cooldown", 0, "Pause between repetitions")

	viper.BindPFlag("count", runCmd.Flags().Lookup("count"))
	viper.BindPFlag("benchtimes", runCmd.Flags().Lookup("benchtime"))
	viper.BindPFlag("cooldown", runCmd.Flags().Lookup("cooldown"))
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	opts := runner.Options{
		Force:      runForce,
		Count:      settings.Count,
		Benchtimes: settings.Benchtimes,
		CPUs:       runCPUs,
		Cooldown:   settings.Cooldown,
		Runner:     newRunnerFunc(),
		Logger:     slog.Default(),
	}

	if len(args) == 0 {
		res, err := runner.RunAll(cmd.Context(), settings.BenchmarksDir, opts)
		if err != nil {
			return fmt.Errorf("run failed after %d directories: %w", res.Ran, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Ran %d benchmark directories, skipped %d\n", res.Ran, res.Skipped)
		return nil
	}

	var res runner.Result
	for _, dir := range args {
		ran, err := runner.RunDir(cmd.Context(), dir, opts)
		if err != nil {
			return fmt.Errorf("failed to run %s: %w", dir, err)
		}
		if ran {
			res.Ran++
		} else {
			res.Skipped++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Ran %d benchmark directories, skipped %d\n", res.Ran, res.Skipped)
	return nil
}
