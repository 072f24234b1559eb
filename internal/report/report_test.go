package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidetect/internal/analysis"
	"aidetect/internal/scanner"
)

func sampleScan() *scanner.Result {
	files := []analysis.FileResult{
		{
			Path:     "src/handlers.py",
			Language: analysis.LangPython,
			Result: analysis.Result{
				AIProbability:    0.82,
				HumanProbability: 0.18,
				Confidence:       analysis.ConfidenceHigh,
				Verdict:          analysis.VerdictLikelyAI,
				Lines:            140,
			},
		},
		{
			Path:     "src/util.go",
			Language: analysis.LangGo,
			Result: analysis.Result{
				AIProbability:    0.20,
				HumanProbability: 0.80,
				Confidence:       analysis.ConfidenceMedium,
				Verdict:          analysis.VerdictLikelyHuman,
				Lines:            55,
			},
		},
		{
			Path:     "src/broken.js",
			Language: analysis.LangJavaScript,
			Error:    "file is not valid UTF-8",
		},
	}

	return &scanner.Result{
		Source:   "/tmp/project",
		Branch:   "main",
		Files:    files,
		Stats:    scanner.ComputeStats(files),
		Duration: 1250 * time.Millisecond,
	}
}

func TestBandClass(t *testing.T) {
	tests := []struct {
		probability float64
		want        string
	}{
		{0.0, "green"},
		{0.34, "green"},
		{0.35, "yellow"},
		{0.54, "yellow"},
		{0.55, "orange"},
		{0.74, "orange"},
		{0.75, "red"},
		{1.0, "red"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bandClass(tt.probability), "probability %v", tt.probability)
	}
}

func TestWriteJSON(t *testing.T) {
	doc := NewDocument(sampleScan())
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, doc.WriteJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "aidetect", decoded.Tool)
	assert.Equal(t, "/tmp/project", decoded.Scan.Source)
	assert.Len(t, decoded.Scan.Files, 3)
	assert.Equal(t, 2, decoded.Scan.Stats.FilesScanned)
	assert.Equal(t, 1, decoded.Scan.Stats.FilesFailed)
	assert.InDelta(t, 0.82, decoded.Scan.Files[0].AIProbability, 1e-9)
}

func TestWriteHTML(t *testing.T) {
	doc := NewDocument(sampleScan())
	path := filepath.Join(t.TempDir(), "report.html")

	require.NoError(t, doc.WriteHTML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "/tmp/project")
	assert.Contains(t, html, "src/handlers.py")
	assert.Contains(t, html, "82.0%")
	assert.Contains(t, html, "file is not valid UTF-8")
	assert.Contains(t, html, `class="red"`)
}

func TestWriteSummary(t *testing.T) {
	doc := NewDocument(sampleScan())

	var buf bytes.Buffer
	doc.WriteSummary(&buf)
	out := buf.String()

	assert.Contains(t, out, "AI Code Detection Summary")
	assert.Contains(t, out, "/tmp/project")
	assert.Contains(t, out, "Scanned 2 files")
	assert.Contains(t, out, "high risk")
	assert.Contains(t, out, "src/handlers.py")
}

func TestWriteFileDetail(t *testing.T) {
	f := &analysis.FileResult{
		Path:     "src/service.py",
		Language: analysis.LangPython,
		Result: analysis.Result{
			AIProbability:    0.61,
			HumanProbability: 0.39,
			Confidence:       analysis.ConfidenceMedium,
			Verdict:          analysis.VerdictPossiblyAI,
			Lines:            88,
			Dimensions: []analysis.DimensionScore{
				{Name: analysis.DimNaming, Value: 0.7},
				{Name: analysis.DimComments, Value: 0.5},
			},
			Patterns: analysis.DetectedPatterns{
				AIPhrases: []string{"This function handles the request"},
			},
		},
	}

	var buf bytes.Buffer
	WriteFileDetail(&buf, f)
	out := buf.String()

	assert.Contains(t, out, "src/service.py")
	assert.Contains(t, out, "61.0%")
	assert.Contains(t, out, "naming")
	assert.Contains(t, out, "This function handles the request")
}

func TestWriteFileDetailError(t *testing.T) {
	f := &analysis.FileResult{Path: "bad.bin", Error: "file too large"}

	var buf bytes.Buffer
	WriteFileDetail(&buf, f)

	assert.True(t, strings.Contains(buf.String(), "file too large"))
}
