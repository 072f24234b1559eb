package analysis

// The eight dimensions share one data-driven scoring mechanism: a dimension
// is a set of tier ladders over bundle metrics. Within a ladder the first
// matching rule wins; across ladders the deltas add; the sum is clamped to
// [0,1]. Adding a signal to a dimension means adding a row here.

type rule struct {
	when  func(*FeatureBundle) bool
	delta float64
}

// ladder is an ordered tier list for a single metric. First match wins.
type ladder []rule

// ruleSet is the full signal set for one dimension.
type ruleSet []ladder

func (rs ruleSet) score(b *FeatureBundle) float64 {
	total := 0.0
	for _, l := range rs {
		for _, r := range l {
			if r.when(b) {
				total += r.delta
				break
			}
		}
	}
	return clamp01(total)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var dimensionRules = map[Dimension]ruleSet{
	DimNaming: {
		{
			{func(b *FeatureBundle) bool { return b.AvgIdentifierLength > 12 }, 0.4},
			{func(b *FeatureBundle) bool { return b.AvgIdentifierLength > 8 }, 0.2},
		},
		{
			{func(b *FeatureBundle) bool { return b.VerboseRatio > 0.30 }, 0.3},
		},
		{
			{func(b *FeatureBundle) bool { return b.DescriptiveCount > 5 }, 0.2},
		},
		{
			{func(b *FeatureBundle) bool { return b.AbbreviatedRatio > 0.20 }, -0.3},
		},
	},
	DimComments: {
		{
			{func(b *FeatureBundle) bool { return b.CommentRatio > 0.30 }, 0.3},
		},
		{
			{func(b *FeatureBundle) bool { return b.FormalBlocks > 2 }, 0.3},
		},
		{
			{func(b *FeatureBundle) bool { return b.AvgCommentLength > 60 }, 0.2},
		},
		{
			{func(b *FeatureBundle) bool { return b.InformalMarkers > 3 }, -0.3},
		},
	},
	DimStructure: {
		{
			{func(b *FeatureBundle) bool { return b.IndentConsistency > 0.95 }, 0.4},
			{func(b *FeatureBundle) bool { return b.IndentConsistency > 0.85 }, 0.2},
		},
		{
			{func(b *FeatureBundle) bool { return b.BlankLineRatio > 0.05 && b.BlankLineRatio < 0.15 }, 0.2},
		},
	},
	DimComplexity: {
		{
			{func(b *FeatureBundle) bool { return b.AvgLineLength > 60 && b.AvgLineLength < 90 }, 0.3},
		},
		{
			{func(b *FeatureBundle) bool { return b.ControlStructures > 0 && b.NestingRatio < 0.30 }, 0.2},
		},
	},
	DimErrorHandling: {
		{
			{func(b *FeatureBundle) bool { return b.DefensiveRatio > 0.10 }, 0.4},
			{func(b *FeatureBundle) bool { return b.DefensiveRatio > 0.05 }, 0.2},
		},
		{
			{func(b *FeatureBundle) bool { return b.TryBlocks > 0 && b.CatchBlocks >= b.TryBlocks }, 0.2},
		},
	},
	DimDocumentation: {
		{
			{func(b *FeatureBundle) bool { return b.DocumentedRatio > 0.70 }, 0.4},
			{func(b *FeatureBundle) bool { return b.DocumentedRatio > 0.40 }, 0.2},
		},
		{
			{func(b *FeatureBundle) bool { return b.AvgDocLength > 100 }, 0.3},
		},
	},
	DimFormatting: {
		{
			{func(b *FeatureBundle) bool { return b.SpacingConsistency > 0.90 }, 0.5},
			{func(b *FeatureBundle) bool { return b.SpacingConsistency > 0.70 }, 0.3},
		},
	},
}

// scoreModernity is the one dimension that is a direct ratio rather than a
// rule ladder. A sample with neither modern nor legacy markers carries no
// signal either way and sits at the midpoint.
func scoreModernity(b *FeatureBundle) float64 {
	total := b.ModernTokens + b.LegacyTokens
	if total == 0 {
		return 0.5
	}
	return float64(b.ModernTokens) / float64(total)
}
