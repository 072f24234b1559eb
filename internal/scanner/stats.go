package scanner

import (
	"sort"

	"aidetect/internal/analysis"
)

const (
	highRiskProbability = 0.70
	topFileCount        = 10
)

// LanguageStats aggregates results per language.
type LanguageStats struct {
	Files          int     `json:"files"`
	AvgProbability float64 `json:"avg_probability"`
}

// Stats summarizes a scan across all successfully scored files.
type Stats struct {
	FilesScanned       int                      `json:"files_scanned"`
	FilesFailed        int                      `json:"files_failed"`
	InsufficientSignal int                      `json:"insufficient_signal"`
	AvgProbability     float64                  `json:"avg_probability"`
	MedianProbability  float64                  `json:"median_probability"`
	Distribution       map[string]int           `json:"distribution"`
	VerdictCounts      map[string]int           `json:"verdict_counts"`
	Languages          map[string]LanguageStats `json:"languages"`
	HighRisk           []analysis.FileResult    `json:"high_risk"`
	TopFiles           []analysis.FileResult    `json:"top_files"`
}

// ComputeStats derives scan statistics from per-file results. Failed files
// count toward FilesFailed and are excluded from every probability figure.
func ComputeStats(files []analysis.FileResult) Stats {
	stats := Stats{
		Distribution:  map[string]int{"likely_human": 0, "mixed": 0, "possibly_ai": 0, "likely_ai": 0},
		VerdictCounts: make(map[string]int),
		Languages:     make(map[string]LanguageStats),
	}

	var scored []analysis.FileResult
	langTotals := make(map[string]float64)

	for _, f := range files {
		if f.Error != "" {
			stats.FilesFailed++
			continue
		}

		stats.FilesScanned++
		scored = append(scored, f)

		if f.InsufficientSignal() {
			stats.InsufficientSignal++
		}

		stats.Distribution[bucketFor(f.AIProbability)]++
		stats.VerdictCounts[string(f.Verdict)]++

		lang := string(f.Language)
		ls := stats.Languages[lang]
		ls.Files++
		stats.Languages[lang] = ls
		langTotals[lang] += f.AIProbability

		if f.AIProbability > highRiskProbability && f.Confidence == analysis.ConfidenceHigh {
			stats.HighRisk = append(stats.HighRisk, f)
		}
	}

	if len(scored) == 0 {
		return stats
	}

	total := 0.0
	for _, f := range scored {
		total += f.AIProbability
	}
	stats.AvgProbability = total / float64(len(scored))

	for lang, ls := range stats.Languages {
		ls.AvgProbability = langTotals[lang] / float64(ls.Files)
		stats.Languages[lang] = ls
	}

	byProbability := make([]analysis.FileResult, len(scored))
	copy(byProbability, scored)
	sort.SliceStable(byProbability, func(i, j int) bool {
		return byProbability[i].AIProbability > byProbability[j].AIProbability
	})

	stats.MedianProbability = medianOf(byProbability)

	top := topFileCount
	if top > len(byProbability) {
		top = len(byProbability)
	}
	stats.TopFiles = byProbability[:top]

	sort.SliceStable(stats.HighRisk, func(i, j int) bool {
		return stats.HighRisk[i].AIProbability > stats.HighRisk[j].AIProbability
	})

	return stats
}

func bucketFor(probability float64) string {
	switch {
	case probability < 0.35:
		return "likely_human"
	case probability < 0.55:
		return "mixed"
	case probability < 0.75:
		return "possibly_ai"
	default:
		return "likely_ai"
	}
}

// medianOf expects files sorted by probability.
func medianOf(sorted []analysis.FileResult) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2].AIProbability
	}
	return (sorted[n/2-1].AIProbability + sorted[n/2].AIProbability) / 2
}
