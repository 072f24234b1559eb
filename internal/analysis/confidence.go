package analysis

// Confidence thresholds on the population variance of the dimension values.
// Tight agreement between the eight lenses means the verdict can be trusted;
// wide disagreement means the sample carries mixed signals.
const (
	highVarianceCeiling   = 0.05
	mediumVarianceCeiling = 0.15
)

// Verdict brackets on the aggregate probability. Lower bounds are exclusive.
const (
	likelyAIFloor   = 0.75
	possiblyAIFloor = 0.55
	mixedFloor      = 0.35
)

// Variance returns the population variance of the dimension values.
func Variance(scores []DimensionScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	mean := 0.0
	for _, s := range scores {
		mean += s.Value
	}
	mean /= float64(len(scores))

	sum := 0.0
	for _, s := range scores {
		d := s.Value - mean
		sum += d * d
	}
	return sum / float64(len(scores))
}

// ConfidenceFor maps a variance to a confidence label.
func ConfidenceFor(variance float64) Confidence {
	switch {
	case variance < highVarianceCeiling:
		return ConfidenceHigh
	case variance < mediumVarianceCeiling:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Classify maps an aggregate probability and confidence to a verdict. Low
// confidence always yields INCONCLUSIVE regardless of the probability.
func Classify(probability float64, confidence Confidence) Verdict {
	if confidence == ConfidenceLow {
		return VerdictInconclusive
	}
	switch {
	case probability > likelyAIFloor:
		return VerdictLikelyAI
	case probability > possiblyAIFloor:
		return VerdictPossiblyAI
	case probability > mixedFloor:
		return VerdictMixed
	default:
		return VerdictLikelyHuman
	}
}
