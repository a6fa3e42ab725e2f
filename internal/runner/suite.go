package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gobench/internal/parser"
	"gobench/internal/utils"
)

// Options controls how a benchmark directory is run. Zero values fall back
// to the defaults of the run command.
type Options struct {
	Force      bool          // Re-run even if _bench.out exists
	Count      int           // Repetitions of the full benchtime sweep
	Benchtimes []string      // Defaults to DefaultBenchtimes
	CPUs       []int         // Defaults to CPULadder(runtime.NumCPU())
	Cooldown   time.Duration // Pause between repetitions
	Runner     Runner
	Logger     *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Count <= 0 {
		o.Count = 1
	}
	if len(o.Benchtimes) == 0 {
		o.Benchtimes = DefaultBenchtimes
	}
	if len(o.CPUs) == 0 {
		o.CPUs = CPULadder(runtime.NumCPU())
	}
	if o.Runner == nil {
		o.Runner = NewGoRunner()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// RunDir runs the benchmarks of dir Count times over every benchtime and
// writes the concatenated output to dir/_bench.out. It reports false when
// the directory was skipped because an output already exists. Nothing is
// written if any run fails.
func RunDir(ctx context.Context, dir string, opts Options) (bool, error) {
	opts = opts.withDefaults()
	logger := opts.Logger
	outPath := filepath.Join(dir, parser.OutputFile)

	if utils.FileExists(outPath) && !opts.Force {
		logger.Debug("benchmark output already exists, skipping", "path", dir)
		return false, nil
	}
	logger.Debug("running benchmark", "path", dir, "cpus", JoinCPUs(opts.CPUs), "benchtimes", len(opts.Benchtimes))

	var output bytes.Buffer
	for run := range opts.Count {
		if run > 0 && opts.Cooldown > 0 {
			logger.Debug("cooling down between runs", "duration", opts.Cooldown)
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(opts.Cooldown):
			}
		}

		logger.Info("benchmark run", "run", run+1, "total", opts.Count, "path", dir)
		for _, benchtime := range opts.Benchtimes {
			out, err := opts.Runner.Run(ctx, dir, benchtime, opts.CPUs)
			if err != nil {
				logger.Error("failed to run benchmark", "path", dir, "benchtime", benchtime, "error", err)
				return false, fmt.Errorf("failed to run benchmark in %s: %w", dir, err)
			}
			output.Write(out)
		}
	}

	logger.Info("writing benchmark output", "path", outPath, "size_bytes", output.Len())
	if err := os.WriteFile(outPath, output.Bytes(), 0644); err != nil {
		return true, fmt.Errorf("failed to write benchmark output: %w", err)
	}
	return true, nil
}

// Result counts what RunAll did.
type Result struct {
	Ran     int
	Skipped int
}

// RunAll calls RunDir for every benchmark directory under root and stops at
// the first failure.
func RunAll(ctx context.Context, root string, opts Options) (Result, error) {
	var res Result
	err := utils.WalkOverBenchmarks(root, func(dir string) error {
		ran, err := RunDir(ctx, dir, opts)
		if err != nil {
			return err
		}
		if ran {
			res.Ran++
		} else {
			res.Skipped++
		}
		return nil
	})
	return res, err
}
