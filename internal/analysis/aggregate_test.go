package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "aidetect/internal/errors"
)

func fullScoreSet(values [8]float64) []DimensionScore {
	scores := make([]DimensionScore, 0, 8)
	for i, dim := range Dimensions {
		scores = append(scores, DimensionScore{Name: dim, Value: values[i]})
	}
	return scores
}

func TestAggregateUniformMean(t *testing.T) {
	tests := []struct {
		name     string
		values   [8]float64
		expected float64
	}{
		{
			name:     "all zero",
			values:   [8]float64{},
			expected: 0,
		},
		{
			name:     "all one",
			values:   [8]float64{1, 1, 1, 1, 1, 1, 1, 1},
			expected: 1,
		},
		{
			name:     "mixed values average",
			values:   [8]float64{0.4, 0.8, 0.6, 0.5, 0.6, 0.7, 0.5, 1.0},
			expected: 0.6375,
		},
		{
			name:     "degenerate sample shape",
			values:   [8]float64{0, 0, 0, 0, 0, 0, 0, 0.5},
			expected: 0.0625,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(fullScoreSet(tt.values), UniformWeighting{})
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestAggregateValidation(t *testing.T) {
	t.Run("rejects short score set", func(t *testing.T) {
		_, err := Aggregate(fullScoreSet([8]float64{})[:5], UniformWeighting{})
		require.Error(t, err)
		assert.True(t, apperrors.IsInputError(err))
	})

	t.Run("rejects duplicate dimension", func(t *testing.T) {
		scores := fullScoreSet([8]float64{})
		scores[3].Name = DimNaming
		_, err := Aggregate(scores, UniformWeighting{})
		require.Error(t, err)
		assert.True(t, apperrors.IsInputError(err))
	})

	t.Run("rejects unknown dimension", func(t *testing.T) {
		scores := fullScoreSet([8]float64{})
		scores[7].Name = Dimension("velocity")
		_, err := Aggregate(scores, UniformWeighting{})
		require.Error(t, err)
		assert.True(t, apperrors.IsInputError(err))
	})

	t.Run("order does not matter", func(t *testing.T) {
		scores := fullScoreSet([8]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8})
		reversed := make([]DimensionScore, len(scores))
		for i, s := range scores {
			reversed[len(scores)-1-i] = s
		}

		a, err := Aggregate(scores, UniformWeighting{})
		require.NoError(t, err)
		b, err := Aggregate(reversed, UniformWeighting{})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

type constantStrategy struct{ v float64 }

func (s constantStrategy) Combine([]DimensionScore) float64 { return s.v }

func TestAggregateCustomStrategy(t *testing.T) {
	scores := fullScoreSet([8]float64{})

	got, err := Aggregate(scores, constantStrategy{v: 0.9})
	require.NoError(t, err)
	assert.Equal(t, 0.9, got)

	t.Run("result is clamped to the unit interval", func(t *testing.T) {
		got, err := Aggregate(scores, constantStrategy{v: 1.7})
		require.NoError(t, err)
		assert.Equal(t, 1.0, got)
	})

	t.Run("nil strategy falls back to uniform", func(t *testing.T) {
		got, err := Aggregate(fullScoreSet([8]float64{1, 1, 1, 1, 1, 1, 1, 1}), nil)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got)
	})
}
