package analysis

import (
	"fmt"

	apperrors "aidetect/internal/errors"
)

// WeightingStrategy combines the eight dimension scores into one probability.
// Implementations must be pure and must return a value in [0,1] when given
// values in [0,1].
type WeightingStrategy interface {
	Combine(scores []DimensionScore) float64
}

// UniformWeighting is the default strategy: the unweighted arithmetic mean.
type UniformWeighting struct{}

func (UniformWeighting) Combine(scores []DimensionScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s.Value
	}
	return sum / float64(len(scores))
}

// Aggregate validates the dimension set and combines it using the given
// strategy. The input must contain exactly the eight known dimensions, each
// once, in any order.
func Aggregate(scores []DimensionScore, strategy WeightingStrategy) (float64, error) {
	if err := validateDimensions(scores); err != nil {
		return 0, err
	}
	if strategy == nil {
		strategy = UniformWeighting{}
	}
	return clamp01(strategy.Combine(scores)), nil
}

func validateDimensions(scores []DimensionScore) error {
	if len(scores) != len(Dimensions) {
		return apperrors.NewInputError(
			fmt.Sprintf("expected %d dimension scores, got %d", len(Dimensions), len(scores)))
	}

	seen := make(map[Dimension]bool, len(Dimensions))
	for _, s := range scores {
		if seen[s.Name] {
			return apperrors.NewInputError(fmt.Sprintf("duplicate dimension %q", s.Name))
		}
		seen[s.Name] = true
	}
	for _, dim := range Dimensions {
		if !seen[dim] {
			return apperrors.NewInputError(fmt.Sprintf("missing dimension %q", dim))
		}
	}
	return nil
}
