package benchmark

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	nonKeyCharsRegex = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	nonSlugRegex     = regexp.MustCompile(`[^a-z0-9-]`)
)

// ChartKey turns a display name into a chart series key made of letters,
// digits and underscores. Distinct names may collide.
func ChartKey(name string) string {
	key := whitespaceRegex.ReplaceAllString(name, "_")
	return nonKeyCharsRegex.ReplaceAllString(key, "")
}

// Slugify turns a display name into an anchor id.
func Slugify(name string) string {
	slug := whitespaceRegex.ReplaceAllString(strings.ToLower(name), "-")
	return nonSlugRegex.ReplaceAllString(slug, "")
}

// CPUKey is the chart series key of a CPU count.
func CPUKey(cpu int) string {
	return fmt.Sprintf("cpu_%d", cpu)
}

// CPULabel is the display label of a CPU count.
func CPULabel(cpu int) string {
	if cpu > 1 {
		return fmt.Sprintf("%d CPUs", cpu)
	}
	return fmt.Sprintf("%d CPU", cpu)
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatNs renders nanoseconds as ns, µs or ms with at most two decimals.
func FormatNs(ns float64) string {
	switch {
	case ns < 1_000:
		return trimFloat(round2(ns)) + " ns"
	case ns < 1_000_000:
		return trimFloat(round2(ns/1_000)) + " µs"
	default:
		return trimFloat(round2(ns/1_000_000)) + " ms"
	}
}

// FormatN renders iteration counts of 1000 and above as a plain division
// with a K suffix, so 1234 becomes "1.234K".
func FormatN(n int) string {
	if n >= 1000 {
		return trimFloat(float64(n)/1000) + "K"
	}
	return strconv.Itoa(n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
