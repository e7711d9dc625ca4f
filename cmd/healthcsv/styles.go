package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/jriceoh2020/applehealthexport/internal/convert"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9A9A9A"})

	countStyle = lipgloss.NewStyle().Bold(true)

	doneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#2ECC71"})
)

// renderSummary prints the post-conversion report.
func renderSummary(w io.Writer, summary *convert.Summary, outputDir string) {
	fmt.Fprintln(w, titleStyle.Render("Conversion complete"))
	if summary.ExportDate != "" {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("export date:"), summary.ExportDate)
	}

	for _, name := range summary.Files {
		fmt.Fprintf(w, "  %s %s rows\n",
			labelStyle.Render(fmt.Sprintf("%-30s", name+".csv")),
			countStyle.Render(fmt.Sprintf("%d", summary.Rows[name])))
	}

	if len(summary.Skipped) > 0 {
		fmt.Fprintf(w, "  %s %d element kinds (run with -v for details)\n",
			labelStyle.Render("skipped:"), len(summary.Skipped))
	}

	fmt.Fprintln(w, doneStyle.Render(
		fmt.Sprintf("Done! %d CSV files written to %s", len(summary.Files), outputDir)))
}

// renderInspect prints the dry-run report.
func renderInspect(w io.Writer, summary *convert.Summary) {
	fmt.Fprintln(w, titleStyle.Render("Export contents"))
	if summary.ExportDate != "" {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("export date:"), summary.ExportDate)
	}

	for _, name := range summary.Files {
		fmt.Fprintf(w, "  %s %s rows\n",
			labelStyle.Render(fmt.Sprintf("%-30s", name)),
			countStyle.Render(fmt.Sprintf("%d", summary.Rows[name])))
	}

	if len(summary.Skipped) > 0 {
		skipped := make([]string, 0, len(summary.Skipped))
		for name := range summary.Skipped {
			skipped = append(skipped, name)
		}
		sort.Strings(skipped)
		fmt.Fprintln(w, titleStyle.Render("Skipped elements"))
		for _, name := range skipped {
			fmt.Fprintf(w, "  %s %d\n",
				labelStyle.Render(fmt.Sprintf("%-55s", name)), summary.Skipped[name])
		}
	}

	fmt.Fprintf(w, "%s elements parsed\n", countStyle.Render(fmt.Sprintf("%d", summary.Elements)))
}
