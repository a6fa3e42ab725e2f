package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gobench/internal/benchmark"
	"gobench/internal/store"
	"gobench/internal/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return cellStyle
		})
}

// RenderText writes a terminal report.
func RenderText(w io.Writer, data ReportData) error {
	var b strings.Builder

	b.WriteString(headerStyle.Render(data.Name) + "\n")
	if data.Headline != "" {
		b.WriteString(headlineStyle.Render(data.Headline) + "\n")
	}
	if data.Description != "" {
		b.WriteString(data.Description + "\n")
	}
	if sys := systemLine(data.System); sys != "" {
		b.WriteString(mutedStyle.Render(sys) + "\n")
	}
	if len(data.Behaviors) > 1 {
		b.WriteString(mutedStyle.Render("Behaviors: "+strings.Join(data.Behaviors, ", ")) + "\n")
	}

	b.WriteString(sectionStyle.Render("Ranking ("+benchmark.Baseline(data.Behavior).String()+")") + "\n")
	ranking := newTable("#", "Implementation", "Mean")
	for _, r := range data.Ranking {
		ranking.Row(strconv.Itoa(r.Position), r.Name, rankedMean(r, data.metric()))
	}
	b.WriteString(ranking.String() + "\n")

	for _, s := range data.Sections {
		b.WriteString(sectionStyle.Render(s.Label) + "\n")
		b.WriteString(itemStyle.Render("Fastest: "+fastStyle.Render(s.Fastest)) + "\n")
		b.WriteString(itemStyle.Render("Slowest: "+slowStyle.Render(s.Slowest)) + "\n")

		means := newTable("Implementation", data.MetricLabel)
		for _, m := range s.Means {
			means.Row(m.Name, m.Formatted)
		}
		b.WriteString(means.String() + "\n")

		for _, c := range s.Comparisons {
			if len(c.Vs) == 0 {
				continue
			}
			b.WriteString(implStyle.Render(c.Name) + "\n")
			for _, e := range c.Vs {
				b.WriteString(itemStyle.Render(verdictStyle(e).Render(e.Sentence(c.Name))) + "\n")
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func verdictStyle(e benchmark.ComparisonEntry) lipgloss.Style {
	switch {
	case !e.Applicable:
		return mutedStyle
	case e.Faster:
		return fastStyle.UnsetBold()
	default:
		return slowStyle.UnsetBold()
	}
}

func rankedMean(r benchmark.Ranked, metric benchmark.Metric) string {
	if !r.HasData {
		return "no data"
	}
	return metric.Format(r.Mean)
}

func systemLine(sys benchmark.SystemInfo) string {
	var parts []string
	if sys.GoOS != "" || sys.GoArch != "" {
		parts = append(parts, sys.GoOS+"/"+sys.GoArch)
	}
	if sys.CPU != "" {
		parts = append(parts, sys.CPU)
	}
	return strings.Join(parts, ", ")
}

// RenderSeries writes a chart projection as a table: one row per N, one
// column per legend entry.
func RenderSeries(w io.Writer, series benchmark.Series) error {
	headers := []string{"N"}
	for _, k := range series.Keys {
		headers = append(headers, k.Label)
	}

	t := newTable(headers...)
	for _, row := range series.Rows {
		cells := []string{benchmark.FormatN(row.N)}
		for _, k := range series.Keys {
			if v, ok := row.Value(k.Key); ok {
				cells = append(cells, benchmark.FormatNs(v))
			} else {
				cells = append(cells, "-")
			}
		}
		t.Row(cells...)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// RenderSummaries writes the landing page listing.
func RenderSummaries(w io.Writer, summaries []benchmark.Summary) error {
	t := newTable("Slug", "Name", "Headline", "Tags")
	for _, s := range summaries {
		t.Row(s.Slug, s.Name, s.Headline, strings.Join(s.Tags, ", "))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// RenderSnapshots writes archived history entries. Ages are relative to now.
func RenderSnapshots(w io.Writer, snapshots []store.Snapshot, now time.Time) error {
	t := newTable("ID", "Slug", "Fastest", "Impls", "Variations", "Age")
	for _, s := range snapshots {
		t.Row(
			strconv.FormatInt(s.ID, 10),
			s.Slug,
			s.Fastest,
			strconv.Itoa(s.Implementations),
			strconv.Itoa(s.Variations),
			utils.FormatAge(s.CreatedAt, now),
		)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
