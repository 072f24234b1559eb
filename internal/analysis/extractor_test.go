package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmptyInput(t *testing.T) {
	b := Extract(SourceSample{Text: ""})

	assert.Equal(t, 0, b.TotalLines)
	assert.Equal(t, 0, b.NonBlankLines)
	assert.Equal(t, 0, b.IdentifierCount)
	assert.Equal(t, 0.0, b.CommentRatio)
	assert.Equal(t, 0.0, b.IndentConsistency)
	assert.Equal(t, 0.0, b.SpacingConsistency)
	assert.Equal(t, 0, b.ModernTokens)
	assert.Equal(t, 0, b.LegacyTokens)
}

func TestExtractLineClassification(t *testing.T) {
	text := "x = compute()\n# explains the call\n\n// another comment\ny = 2\n"
	b := Extract(SourceSample{Text: text})

	assert.Equal(t, 4, b.NonBlankLines)
	assert.Equal(t, 2, b.CommentLines)
	assert.Equal(t, 2, b.CodeLines)
	assert.InDelta(t, 1.0, b.CommentRatio, 1e-9)
}

func TestExtractIdentifierStats(t *testing.T) {
	text := "total_weighted_sum = alpha\nresponse_data = beta\n"
	b := Extract(SourceSample{Text: text})

	require.Equal(t, 4, b.IdentifierCount)
	assert.InDelta(t, 10.0, b.AvgIdentifierLength, 1e-9)
	assert.Equal(t, 1, b.VerboseCount)
	assert.Equal(t, 1, b.DescriptiveCount)
	assert.Equal(t, 0, b.AbbreviatedCount)
}

func TestExtractIdentifiersSkipReservedWords(t *testing.T) {
	text := "if x > y:\n    return x\n"
	b := Extract(SourceSample{Text: text})

	assert.Equal(t, 3, b.IdentifierCount)
	assert.InDelta(t, 1.0, b.AvgIdentifierLength, 1e-9)
}

func TestExtractIdentifiersIgnoreStringsAndComments(t *testing.T) {
	text := "name = \"some_extremely_long_identifier\"  # holds the long_comment_identifier\n"
	b := Extract(SourceSample{Text: text})

	assert.Equal(t, 1, b.IdentifierCount)
	assert.InDelta(t, 4.0, b.AvgIdentifierLength, 1e-9)
}

func TestExtractIndentConsistency(t *testing.T) {
	t.Run("uniform four-space indentation", func(t *testing.T) {
		text := "def f():\n    a = 1\n    b = 2\n        c = 3\n"
		b := Extract(SourceSample{Text: text})
		assert.InDelta(t, 1.0, b.IndentConsistency, 1e-9)
	})

	t.Run("mixed indentation drops consistency", func(t *testing.T) {
		text := "def f():\n    a = 1\n   b = 2\n  c = 3\n 4\n"
		b := Extract(SourceSample{Text: text})
		assert.Less(t, b.IndentConsistency, 0.5)
	})
}

func TestExtractDefensiveCounts(t *testing.T) {
	text := "try:\n    x()\nexcept ValueError:\n    pass\nif x is not None:\n    pass\n"
	b := Extract(SourceSample{Text: text})

	assert.Equal(t, 1, b.TryBlocks)
	assert.Equal(t, 1, b.CatchBlocks)
	assert.Equal(t, 1, b.NullChecks)
	assert.InDelta(t, 0.5, b.DefensiveRatio, 1e-9)
}

func TestExtractDocumentation(t *testing.T) {
	text := "def f():\n    \"\"\"Returns the frobnicated value of the accumulator state.\"\"\"\n    return 1\n"
	b := Extract(SourceSample{Text: text})

	assert.Equal(t, 1, b.Definitions)
	assert.Equal(t, 1, b.FormalBlocks)
	assert.InDelta(t, 1.0, b.DocumentedRatio, 1e-9)
	assert.Greater(t, b.AvgDocLength, 50.0)
}

func TestExtractModernityTokens(t *testing.T) {
	t.Run("modern markers", func(t *testing.T) {
		text := "async def f(x: int):\n    await g()\n"
		b := Extract(SourceSample{Text: text})
		assert.Equal(t, 3, b.ModernTokens)
		assert.Equal(t, 0, b.LegacyTokens)
	})

	t.Run("legacy markers", func(t *testing.T) {
		text := "var x = 1\nFoo.prototype.bar = 2\ns = '%s'\n"
		b := Extract(SourceSample{Text: text})
		assert.Equal(t, 0, b.ModernTokens)
		assert.Equal(t, 3, b.LegacyTokens)
	})
}

func TestExtractSpacingConsistency(t *testing.T) {
	t.Run("fully spaced operators", func(t *testing.T) {
		b := Extract(SourceSample{Text: "a = b + c\nd = e * f\n"})
		assert.InDelta(t, 1.0, b.SpacingConsistency, 1e-9)
	})

	t.Run("unspaced operators", func(t *testing.T) {
		b := Extract(SourceSample{Text: "a=b+c\nd=e*f\n"})
		assert.InDelta(t, 0.0, b.SpacingConsistency, 1e-9)
	})
}

func TestExtractBlankLineRatio(t *testing.T) {
	text := "a = 1\n\nb = 2\n\nc = 3\nd = 4\ne = 5\nf = 6\ng = 7\nh = 8\n"
	b := Extract(SourceSample{Text: text})
	assert.InDelta(t, 0.2, b.BlankLineRatio, 1e-9)
}

func TestDetectPatterns(t *testing.T) {
	t.Run("ai phrases and obvious comments surface as examples", func(t *testing.T) {
		lines := []string{
			"# Ensure that the buffer is ready",
			"# increment counter",
			"a = 1", "b = 2", "c = 3", "d = 4", "e = 5", "f = 6", "g = 7", "h = 8",
		}
		b := Extract(SourceSample{Text: strings.Join(lines, "\n")})

		require.Len(t, b.Patterns.AIPhrases, 1)
		assert.Contains(t, b.Patterns.AIPhrases[0], "Ensure that")
		require.Len(t, b.Patterns.ObviousComments, 1)
		assert.Equal(t, "Increment variable", b.Patterns.ObviousComments[0])
	})

	t.Run("missing quirks reported on substantial samples", func(t *testing.T) {
		lines := make([]string, 12)
		for i := range lines {
			lines[i] = "value = compute_next_value(value)"
		}
		b := Extract(SourceSample{Text: strings.Join(lines, "\n")})

		assert.Contains(t, b.Patterns.MissingQuirks, "no TODO/FIXME/HACK/NOTE/XXX comments")
		assert.Contains(t, b.Patterns.MissingQuirks, "no debugging statements")
	})

	t.Run("tiny samples report no missing quirks", func(t *testing.T) {
		b := Extract(SourceSample{Text: "a = 1\nb = 2\n"})
		assert.Empty(t, b.Patterns.MissingQuirks)
	})
}
