package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultBenchtimes are the fixed iteration counts every benchmark is run
// with. Each one produces a separate N on the chart axis.
var DefaultBenchtimes = []string{
	"1000x", "2000x", "3000x", "4000x", "5000x",
	"6000x", "7000x", "8000x", "9000x", "10000x",
}

// Runner executes the benchmarks of one directory for a single benchtime
// and returns the raw go test output.
type Runner interface {
	Run(ctx context.Context, dir, benchtime string, cpus []int) ([]byte, error)
}

// GoRunner implements Runner using the 'go test' command.
type GoRunner struct {
	GoBin string
}

// execCommand is swapped out in tests.
var execCommand = exec.CommandContext

func NewGoRunner() *GoRunner {
	return &GoRunner{GoBin: "go"}
}

// Args returns the go test arguments for one benchtime and CPU ladder.
func (r *GoRunner) Args(benchtime string, cpus []int) []string {
	args := []string{"test", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime", benchtime}
	if len(cpus) > 0 {
		args = append(args, "-cpu", JoinCPUs(cpus))
	}
	return args
}

func (r *GoRunner) Run(ctx context.Context, dir, benchtime string, cpus []int) ([]byte, error) {
	bin := r.GoBin
	if bin == "" {
		bin = "go"
	}
	cmd := execCommand(ctx, bin, r.Args(benchtime, cpus)...)
	cmd.Dir = dir

	// go test reports benchmarks on stdout; stderr only matters on failure.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("benchmark execution failed: %w\nOutput:\n%s%s", err, stdout.String(), stderr.String())
	}
	return stdout.Bytes(), nil
}

// CPULadder returns the powers of two from 1 up to max.
func CPULadder(max int) []int {
	cpus := []int{1}
	for n := 2; n <= max; n *= 2 {
		cpus = append(cpus, n)
	}
	return cpus
}

// JoinCPUs formats a CPU list for the -cpu flag.
func JoinCPUs(cpus []int) string {
	parts := make([]string, len(cpus))
	for i, c := range cpus {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}
