package ui

import (
	"fmt"
	"strings"

	"gobench/internal/benchmark"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a report as GitHub flavored markdown. Implementation
// headings get Slugify anchors that the ranking links to.
func RenderMarkdown(data ReportData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", data.Name)
	if data.Headline != "" {
		fmt.Fprintf(&b, "> %s\n\n", data.Headline)
	}
	if data.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", data.Description)
	}
	if sys := systemLine(data.System); sys != "" {
		fmt.Fprintf(&b, "**System:** %s\n\n", sys)
	}
	if len(data.Behaviors) > 1 {
		fmt.Fprintf(&b, "**Behaviors:** %s\n\n", strings.Join(data.Behaviors, ", "))
	}

	fmt.Fprintf(&b, "## Ranking (%s)\n\n", benchmark.Baseline(data.Behavior))
	b.WriteString("| # | Implementation | Mean |\n|---|---|---|\n")
	for _, r := range data.Ranking {
		fmt.Fprintf(&b, "| %d | [%s](#%s) | %s |\n", r.Position, r.Name, benchmark.Slugify(r.Name), rankedMean(r, data.metric()))
	}
	b.WriteString("\n")

	for _, s := range data.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.Label)
		fmt.Fprintf(&b, "- Fastest: **%s**\n- Slowest: **%s**\n\n", s.Fastest, s.Slowest)

		fmt.Fprintf(&b, "| Implementation | %s |\n|---|---|\n", data.MetricLabel)
		for _, m := range s.Means {
			fmt.Fprintf(&b, "| %s | %s |\n", m.Name, m.Formatted)
		}
		b.WriteString("\n")

		for _, c := range s.Comparisons {
			if len(c.Vs) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", c.Name)
			// One anchor per implementation and page.
			if s.Selector == data.Sections[0].Selector {
				fmt.Fprintf(&b, "<a id=\"%s\"></a>\n\n", benchmark.Slugify(c.Name))
			}
			for _, e := range c.Vs {
				fmt.Fprintf(&b, "- %s\n", e.Sentence(c.Name))
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// RenderPretty renders the markdown report for the terminal with glamour.
func RenderPretty(data ReportData, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(RenderMarkdown(data))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
