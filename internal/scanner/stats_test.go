package scanner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidetect/internal/analysis"
)

func scoredFile(path string, probability float64, confidence analysis.Confidence) analysis.FileResult {
	return analysis.FileResult{
		Path:     path,
		Language: analysis.LangPython,
		Result: analysis.Result{
			AIProbability:    probability,
			HumanProbability: 1 - probability,
			Confidence:       confidence,
			Verdict:          analysis.Classify(probability, confidence),
			Lines:            50,
		},
	}
}

func TestComputeStats(t *testing.T) {
	files := []analysis.FileResult{
		scoredFile("a.py", 0.10, analysis.ConfidenceHigh),
		scoredFile("b.py", 0.40, analysis.ConfidenceHigh),
		scoredFile("c.py", 0.60, analysis.ConfidenceMedium),
		scoredFile("d.py", 0.80, analysis.ConfidenceHigh),
		{Path: "broken.py", Language: analysis.LangPython, Error: "file is not valid UTF-8"},
	}

	stats := ComputeStats(files)

	assert.Equal(t, 4, stats.FilesScanned)
	assert.Equal(t, 1, stats.FilesFailed)
	assert.InDelta(t, 0.475, stats.AvgProbability, 1e-9)
	assert.InDelta(t, 0.50, stats.MedianProbability, 1e-9)

	assert.Equal(t, 1, stats.Distribution["likely_human"])
	assert.Equal(t, 1, stats.Distribution["mixed"])
	assert.Equal(t, 1, stats.Distribution["possibly_ai"])
	assert.Equal(t, 1, stats.Distribution["likely_ai"])

	require.Len(t, stats.HighRisk, 1)
	assert.Equal(t, "d.py", stats.HighRisk[0].Path)

	require.NotEmpty(t, stats.TopFiles)
	assert.Equal(t, "d.py", stats.TopFiles[0].Path)
	assert.Equal(t, "a.py", stats.TopFiles[len(stats.TopFiles)-1].Path)

	lang := stats.Languages[string(analysis.LangPython)]
	assert.Equal(t, 4, lang.Files)
	assert.InDelta(t, 0.475, lang.AvgProbability, 1e-9)
}

func TestComputeStatsHighRiskNeedsHighConfidence(t *testing.T) {
	files := []analysis.FileResult{
		scoredFile("low_conf.py", 0.90, analysis.ConfidenceLow),
		scoredFile("med_conf.py", 0.90, analysis.ConfidenceMedium),
	}

	stats := ComputeStats(files)
	assert.Empty(t, stats.HighRisk)
}

func TestComputeStatsTopFilesCapped(t *testing.T) {
	var files []analysis.FileResult
	for i := 0; i < 25; i++ {
		files = append(files, scoredFile(fmt.Sprintf("f%02d.py", i), float64(i)/25.0, analysis.ConfidenceHigh))
	}

	stats := ComputeStats(files)
	require.Len(t, stats.TopFiles, 10)
	assert.Equal(t, "f24.py", stats.TopFiles[0].Path)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.FilesScanned)
	assert.Equal(t, 0.0, stats.AvgProbability)
	assert.Equal(t, 0.0, stats.MedianProbability)
	assert.Empty(t, stats.TopFiles)
}

func TestBucketBoundaries(t *testing.T) {
	tests := []struct {
		probability float64
		bucket      string
	}{
		{0.0, "likely_human"},
		{0.34, "likely_human"},
		{0.35, "mixed"},
		{0.54, "mixed"},
		{0.55, "possibly_ai"},
		{0.74, "possibly_ai"},
		{0.75, "likely_ai"},
		{1.0, "likely_ai"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.bucket, bucketFor(tt.probability), "probability %v", tt.probability)
	}
}
