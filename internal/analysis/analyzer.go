package analysis

// MinSignalLines is the floor below which a verdict should be treated as
// carrying insufficient signal. Analysis still runs and stays total; callers
// decide how to present the result.
const MinSignalLines = 10

// Analyzer scores source samples. It is stateless and safe for concurrent
// use; one instance is shared across the scanner worker pool and the HTTP
// handlers.
type Analyzer struct {
	strategy WeightingStrategy
}

// NewAnalyzer returns an Analyzer with uniform dimension weighting.
func NewAnalyzer() *Analyzer {
	return &Analyzer{strategy: UniformWeighting{}}
}

// NewAnalyzerWithStrategy returns an Analyzer using a custom weighting
// strategy. A nil strategy falls back to uniform weighting.
func NewAnalyzerWithStrategy(strategy WeightingStrategy) *Analyzer {
	if strategy == nil {
		strategy = UniformWeighting{}
	}
	return &Analyzer{strategy: strategy}
}

// Analyze scores one sample. It is pure: the same sample always yields the
// same Result, and no state is retained between calls.
func (a *Analyzer) Analyze(sample SourceSample) (Result, error) {
	bundle := Extract(sample)
	scores := ScoreDimensions(&bundle)

	probability, err := Aggregate(scores, a.strategy)
	if err != nil {
		return Result{}, err
	}

	variance := Variance(scores)
	confidence := ConfidenceFor(variance)

	return Result{
		AIProbability:    probability,
		HumanProbability: 1 - probability,
		Dimensions:       scores,
		Variance:         variance,
		Confidence:       confidence,
		Verdict:          Classify(probability, confidence),
		Lines:            bundle.TotalLines,
		Patterns:         bundle.Patterns,
	}, nil
}

// InsufficientSignal reports whether the sample was too small for the
// verdict to mean much.
func (r Result) InsufficientSignal() bool {
	return r.Lines < MinSignalLines
}
