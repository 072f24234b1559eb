package analysis

// ScoreDimensions evaluates all eight dimensions against a bundle, in
// canonical order. Each score carries the raw metrics that drove it so
// reports can show the evidence, not just the number.
func ScoreDimensions(b *FeatureBundle) []DimensionScore {
	scores := make([]DimensionScore, 0, len(Dimensions))
	for _, dim := range Dimensions {
		scores = append(scores, scoreDimension(dim, b))
	}
	return scores
}

func scoreDimension(dim Dimension, b *FeatureBundle) DimensionScore {
	var value float64
	if dim == DimSyntaxModernity {
		value = scoreModernity(b)
	} else {
		value = dimensionRules[dim].score(b)
	}
	return DimensionScore{
		Name:    dim,
		Value:   value,
		Metrics: metricsFor(dim, b),
	}
}

func metricsFor(dim Dimension, b *FeatureBundle) map[string]float64 {
	switch dim {
	case DimNaming:
		return map[string]float64{
			"avg_identifier_length": b.AvgIdentifierLength,
			"verbose_ratio":         b.VerboseRatio,
			"descriptive_count":     float64(b.DescriptiveCount),
			"abbreviated_ratio":     b.AbbreviatedRatio,
		}
	case DimComments:
		return map[string]float64{
			"comment_ratio":      b.CommentRatio,
			"formal_blocks":      float64(b.FormalBlocks),
			"avg_comment_length": b.AvgCommentLength,
			"informal_markers":   float64(b.InformalMarkers),
		}
	case DimStructure:
		return map[string]float64{
			"indent_consistency": b.IndentConsistency,
			"blank_line_ratio":   b.BlankLineRatio,
		}
	case DimComplexity:
		return map[string]float64{
			"avg_line_length":    b.AvgLineLength,
			"control_structures": float64(b.ControlStructures),
			"nesting_ratio":      b.NestingRatio,
		}
	case DimErrorHandling:
		return map[string]float64{
			"defensive_ratio": b.DefensiveRatio,
			"try_blocks":      float64(b.TryBlocks),
			"catch_blocks":    float64(b.CatchBlocks),
			"null_checks":     float64(b.NullChecks),
		}
	case DimDocumentation:
		return map[string]float64{
			"documented_ratio": b.DocumentedRatio,
			"definitions":      float64(b.Definitions),
			"avg_doc_length":   b.AvgDocLength,
		}
	case DimFormatting:
		return map[string]float64{
			"spacing_consistency": b.SpacingConsistency,
		}
	case DimSyntaxModernity:
		return map[string]float64{
			"modern_tokens": float64(b.ModernTokens),
			"legacy_tokens": float64(b.LegacyTokens),
		}
	}
	return nil
}
