package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"aidetect/internal/analysis"
	"aidetect/internal/database"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgWhite)
	mutedColor  = color.New(color.FgHiBlack)
	greenColor  = color.New(color.FgGreen)
	yellowColor = color.New(color.FgYellow)
	orangeColor = color.New(color.FgHiYellow)
	redColor    = color.New(color.FgRed, color.Bold)
)

func bandColor(probability float64) *color.Color {
	switch bandClass(probability) {
	case "green":
		return greenColor
	case "yellow":
		return yellowColor
	case "orange":
		return orangeColor
	default:
		return redColor
	}
}

// WriteSummary prints a colorized scan summary to w, suitable for a terminal.
func (d *Document) WriteSummary(w io.Writer) {
	stats := d.Scan.Stats

	headerColor.Fprintln(w, "AI Code Detection Summary")
	labelColor.Fprintf(w, "Source: %s", d.Scan.Source)
	if d.Scan.Branch != "" {
		labelColor.Fprintf(w, " @ %s", d.Scan.Branch)
	}
	fmt.Fprintln(w)
	mutedColor.Fprintf(w, "Scanned %d files in %s (%d failed)\n\n",
		stats.FilesScanned, d.Scan.Duration.Round(time.Millisecond), stats.FilesFailed)

	labelColor.Fprint(w, "Average AI probability: ")
	bandColor(stats.AvgProbability).Fprintf(w, "%.1f%%\n", stats.AvgProbability*100)
	labelColor.Fprint(w, "Median AI probability:  ")
	bandColor(stats.MedianProbability).Fprintf(w, "%.1f%%\n\n", stats.MedianProbability*100)

	labelColor.Fprintln(w, "Distribution:")
	greenColor.Fprintf(w, "  likely human  %d\n", stats.Distribution["likely_human"])
	yellowColor.Fprintf(w, "  mixed         %d\n", stats.Distribution["mixed"])
	orangeColor.Fprintf(w, "  possibly AI   %d\n", stats.Distribution["possibly_ai"])
	redColor.Fprintf(w, "  likely AI     %d\n", stats.Distribution["likely_ai"])

	if len(stats.Languages) > 0 {
		fmt.Fprintln(w)
		labelColor.Fprintln(w, "By language:")
		names := make([]string, 0, len(stats.Languages))
		for name := range stats.Languages {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ls := stats.Languages[name]
			labelColor.Fprintf(w, "  %-12s %3d files  ", name, ls.Files)
			bandColor(ls.AvgProbability).Fprintf(w, "%.1f%%\n", ls.AvgProbability*100)
		}
	}

	if len(stats.TopFiles) > 0 {
		fmt.Fprintln(w)
		labelColor.Fprintln(w, "Highest scoring files:")
		for _, f := range stats.TopFiles {
			bandColor(f.AIProbability).Fprintf(w, "  %5.1f%%", f.AIProbability*100)
			mutedColor.Fprintf(w, "  %-6s", f.Confidence)
			labelColor.Fprintf(w, "  %s\n", f.Path)
		}
	}

	if len(stats.HighRisk) > 0 {
		fmt.Fprintln(w)
		redColor.Fprintf(w, "%d high risk files (probability above %.0f%% with HIGH confidence):\n",
			len(stats.HighRisk), 70.0)
		for _, f := range stats.HighRisk {
			redColor.Fprintf(w, "  %5.1f%%  %s\n", f.AIProbability*100, f.Path)
		}
	}

	if stats.InsufficientSignal > 0 {
		fmt.Fprintln(w)
		mutedColor.Fprintf(w, "%d files had too little code to score reliably\n", stats.InsufficientSignal)
	}
}

// WriteFileDetail prints a per-file dimension breakdown for a single result.
func WriteFileDetail(w io.Writer, f *analysis.FileResult) {
	headerColor.Fprintln(w, f.Path)
	if f.Error != "" {
		redColor.Fprintf(w, "  error: %s\n", f.Error)
		return
	}

	labelColor.Fprint(w, "  AI probability: ")
	bandColor(f.AIProbability).Fprintf(w, "%.1f%%", f.AIProbability*100)
	mutedColor.Fprintf(w, "  (%s, %s, %d lines)\n", f.Confidence, f.Verdict, f.Lines)

	for _, d := range f.Dimensions {
		labelColor.Fprintf(w, "    %-18s", d.Name)
		bandColor(d.Value).Fprintf(w, "%.2f\n", d.Value)
	}

	printPatternGroup(w, "AI phrasing", f.Patterns.AIPhrases)
	printPatternGroup(w, "obvious comments", f.Patterns.ObviousComments)
	printPatternGroup(w, "missing human quirks", f.Patterns.MissingQuirks)
}

// WriteHistory prints recorded scans as a compact table, newest first.
func WriteHistory(w io.Writer, records []database.ScanRecord) {
	headerColor.Fprintln(w, "Recorded scans")
	for _, r := range records {
		mutedColor.Fprintf(w, "%s  ", r.CreatedAt.Format("2006-01-02 15:04"))
		bandColor(r.AvgProbability).Fprintf(w, "%5.1f%%", r.AvgProbability*100)
		labelColor.Fprintf(w, "  %s", r.Source)
		if r.Branch != "" {
			mutedColor.Fprintf(w, " @ %s", r.Branch)
		}
		mutedColor.Fprintf(w, "  (%d files", r.FilesScanned)
		if r.HighRiskCount > 0 {
			redColor.Fprintf(w, ", %d high risk", r.HighRiskCount)
		}
		mutedColor.Fprintln(w, ")")
	}
}

func printPatternGroup(w io.Writer, label string, examples []string) {
	if len(examples) == 0 {
		return
	}
	mutedColor.Fprintf(w, "    %s:\n", label)
	for _, ex := range examples {
		mutedColor.Fprintf(w, "      %s\n", ex)
	}
}
