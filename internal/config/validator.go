package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"gobench/internal/benchmark"
)

var iterationsRegex = regexp.MustCompile(`^[1-9][0-9]*x$`)

// Formats accepted by the report command.
var Formats = []string{"text", "markdown", "pretty", "json"}

// ValidateConfig validates the resolved settings and returns one error
// listing every problem found.
func ValidateConfig(s Settings) error {
	var errors []string

	if s.Count <= 0 {
		errors = append(errors, fmt.Sprintf("count must be positive, got: %d", s.Count))
	}

	if len(s.Benchtimes) == 0 {
		errors = append(errors, "benchtimes must not be empty")
	}
	for _, bt := range s.Benchtimes {
		if !validBenchtime(bt) {
			errors = append(errors, fmt.Sprintf("benchtime must be an iteration count like 1000x or a duration, got: %q", bt))
		}
	}

	if s.Cooldown < 0 {
		errors = append(errors, fmt.Sprintf("cooldown must not be negative, got: %v", s.Cooldown))
	}

	if !slices.Contains(Formats, s.Format) {
		errors = append(errors, fmt.Sprintf("format must be one of %s, got: %q", strings.Join(Formats, ", "), s.Format))
	}

	if _, err := benchmark.ParseMetric(s.Metric); err != nil {
		errors = append(errors, err.Error())
	}

	switch strings.ToLower(s.Store.Type) {
	case "", "sqlite", "sqlite3":
	case "postgres", "postgresql":
		if s.Store.DSN == "" {
			errors = append(errors, "store.dsn is required for postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("store.type must be sqlite or postgres, got: %q", s.Store.Type))
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}

func validBenchtime(bt string) bool {
	if iterationsRegex.MatchString(bt) {
		return true
	}
	d, err := time.ParseDuration(bt)
	return err == nil && d > 0
}
