package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariance(t *testing.T) {
	tests := []struct {
		name     string
		values   [8]float64
		expected float64
	}{
		{
			name:     "identical values have zero variance",
			values:   [8]float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
			expected: 0,
		},
		{
			name:     "degenerate sample shape",
			values:   [8]float64{0, 0, 0, 0, 0, 0, 0, 0.5},
			expected: 0.02734375,
		},
		{
			name:     "maximal disagreement",
			values:   [8]float64{0, 1, 0, 1, 0, 1, 0, 1},
			expected: 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Variance(fullScoreSet(tt.values)), 1e-9)
		})
	}

	t.Run("empty set has zero variance", func(t *testing.T) {
		assert.Equal(t, 0.0, Variance(nil))
	})
}

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		name     string
		variance float64
		expected Confidence
	}{
		{"tight agreement", 0.01, ConfidenceHigh},
		{"just below the high ceiling", 0.0499, ConfidenceHigh},
		{"exactly the high ceiling", 0.05, ConfidenceMedium},
		{"moderate disagreement", 0.10, ConfidenceMedium},
		{"exactly the medium ceiling", 0.15, ConfidenceLow},
		{"wide disagreement", 0.30, ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConfidenceFor(tt.variance))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		confidence  Confidence
		expected    Verdict
	}{
		{"low confidence always inconclusive", 0.95, ConfidenceLow, VerdictInconclusive},
		{"low confidence inconclusive even near zero", 0.05, ConfidenceLow, VerdictInconclusive},
		{"above the likely-AI floor", 0.76, ConfidenceHigh, VerdictLikelyAI},
		{"exactly the likely-AI floor stays possibly", 0.75, ConfidenceHigh, VerdictPossiblyAI},
		{"above the possibly-AI floor", 0.60, ConfidenceMedium, VerdictPossiblyAI},
		{"exactly the possibly-AI floor stays mixed", 0.55, ConfidenceHigh, VerdictMixed},
		{"above the mixed floor", 0.40, ConfidenceHigh, VerdictMixed},
		{"exactly the mixed floor stays human", 0.35, ConfidenceMedium, VerdictLikelyHuman},
		{"low probability", 0.10, ConfidenceHigh, VerdictLikelyHuman},
		{"zero probability", 0.0, ConfidenceHigh, VerdictLikelyHuman},
		{"full probability", 1.0, ConfidenceMedium, VerdictLikelyAI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.probability, tt.confidence))
		})
	}
}
