package analysis

import (
	"regexp"
	"strings"
)

// FeatureBundle holds every primitive measurement taken from a sample. It is
// produced once per sample and shared read-only across all eight analyzers.
type FeatureBundle struct {
	TotalLines    int
	NonBlankLines int
	CodeLines     int
	CommentLines  int

	IdentifierCount     int
	AvgIdentifierLength float64
	VerboseCount        int
	VerboseRatio        float64
	DescriptiveCount    int
	AbbreviatedCount    int
	AbbreviatedRatio    float64

	CommentRatio     float64
	FormalBlocks     int
	InformalMarkers  int
	AvgCommentLength float64

	IndentConsistency float64
	BlankLineRatio    float64

	AvgLineLength     float64
	ControlStructures int
	NestingIndicators int
	NestingRatio      float64

	TryBlocks      int
	CatchBlocks    int
	FinallyBlocks  int
	NullChecks     int
	DefensiveRatio float64

	Definitions     int
	DocumentedRatio float64
	AvgDocLength    float64

	SpacingConsistency float64

	ModernTokens int
	LegacyTokens int

	Patterns DetectedPatterns
}

var (
	reDocBlock   = regexp.MustCompile(`(?s)""".*?"""|'''.*?'''|/\*.*?\*/`)
	reIdentifier = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	reString     = regexp.MustCompile(`"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'|` + "`[^`]*`")
	reControl    = regexp.MustCompile(`\b(?:if|for|while|switch|case)\b`)
	reTry        = regexp.MustCompile(`\btry\s*[:{]`)
	reCatch      = regexp.MustCompile(`\bexcept\b|\bcatch\b`)
	reFinally    = regexp.MustCompile(`\bfinally\b`)
	reNullCheck  = regexp.MustCompile(`(?i)is\s+not\s+none|is\s+none|[!=]=\s*null\b|[!=]=\s*nil\b`)
	reDefinition = regexp.MustCompile(`\bdef\s+\w+|\bclass\s+\w+|\bfunc\s+\w+|\bfunction\s+\w*\(|\bfn\s+\w+`)
	reInformal   = regexp.MustCompile(`(?:#|//)\s*(?:TODO|FIXME|HACK|NOTE|XXX)`)
	reSpacedOp   = regexp.MustCompile(`\s[+\-*/=]\s`)
	reAnyOp      = regexp.MustCompile(`[+\-*/=]`)

	reTypeHint  = regexp.MustCompile(`:\s*(?:str|int|float|bool|List|Dict|Optional|string|number|boolean)\b`)
	reFString   = regexp.MustCompile(`\bf["']`)
	reAwait     = regexp.MustCompile(`\bawait\s`)
	reAsync     = regexp.MustCompile(`\basync\s`)
	reWith      = regexp.MustCompile(`\bwith\s+\w+`)
	reVarDecl   = regexp.MustCompile(`\bvar\s`)
	rePrototype = regexp.MustCompile(`\.prototype\.`)
	rePrintf    = regexp.MustCompile(`%\s*[sd]`)

	reLineComment = regexp.MustCompile(`(?m)(?:#|//).*$`)
)

// reservedWords are token-pattern matches that are not identifiers in any of
// the supported languages. Kept small on purpose: the extractor is lexical
// and errs toward inclusion.
var reservedWords = map[string]bool{
	"if": true, "else": true, "elif": true, "for": true, "while": true,
	"switch": true, "case": true, "def": true, "class": true, "func": true,
	"function": true, "fn": true, "return": true, "var": true, "let": true,
	"const": true, "try": true, "except": true, "catch": true, "finally": true,
	"import": true, "from": true, "package": true, "async": true, "await": true,
	"with": true, "as": true, "in": true, "is": true, "not": true, "and": true,
	"or": true, "new": true, "nil": true, "null": true, "None": true,
	"true": true, "false": true, "True": true, "False": true, "self": true,
	"this": true, "void": true, "public": true, "private": true, "static": true,
	"int": true, "str": true, "float": true, "bool": true, "string": true,
}

// abbreviations that read as human shorthand even above three characters.
var abbreviatedNames = map[string]bool{
	"tmp": true, "temp": true, "val": true, "res": true, "arr": true,
	"obj": true, "fn": true, "cb": true, "idx": true, "cnt": true,
	"num": true, "err": true, "buf": true, "ptr": true,
}

var descriptiveSuffixes = []string{"_data", "_value", "_result", "_count", "_list", "_info"}
var descriptivePrefixes = []string{"response_", "input_", "output_", "result_", "user_", "request_"}

// Extract converts a sample into a FeatureBundle. It is total: empty or
// malformed input yields an all-zero bundle, never an error. Every ratio
// with a zero denominator is reported as zero.
func Extract(sample SourceSample) FeatureBundle {
	var b FeatureBundle
	text := sample.Text
	if text == "" {
		return b
	}

	lines := strings.Split(text, "\n")
	b.TotalLines = len(lines)

	var commentLines []string
	lineLengthSum := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		b.NonBlankLines++
		lineLengthSum += len(trimmed)
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
			b.CommentLines++
			commentLines = append(commentLines, trimmed)
		} else {
			b.CodeLines++
		}
	}
	if b.NonBlankLines > 0 {
		b.AvgLineLength = float64(lineLengthSum) / float64(b.NonBlankLines)
	}

	docBlocks := reDocBlock.FindAllString(text, -1)
	b.FormalBlocks = len(docBlocks)
	docLengthSum := 0
	for _, d := range docBlocks {
		docLengthSum += len(d)
	}
	if len(docBlocks) > 0 {
		b.AvgDocLength = float64(docLengthSum) / float64(len(docBlocks))
	}

	b.extractIdentifiers(text)
	b.extractComments(text, commentLines)
	b.extractLayout(text, lines)
	b.extractControlFlow(text)
	b.extractDefensive(text)
	b.extractDocumentation(text)
	b.extractSpacing(text)
	b.extractModernity(text)
	b.Patterns = detectPatterns(text, commentLines, b.NonBlankLines)

	return b
}

// extractIdentifiers tokenizes code with doc blocks, line comments, and
// string literals removed, so identifier stats are not skewed by prose.
func (b *FeatureBundle) extractIdentifiers(text string) {
	code := reDocBlock.ReplaceAllString(text, "")
	code = reLineComment.ReplaceAllString(code, "")
	code = reString.ReplaceAllString(code, "")

	lengthSum := 0
	for _, tok := range reIdentifier.FindAllString(code, -1) {
		if reservedWords[tok] {
			continue
		}
		b.IdentifierCount++
		lengthSum += len(tok)

		if segmentCount(tok) >= 3 {
			b.VerboseCount++
		}
		if len(tok) <= 3 || abbreviatedNames[strings.ToLower(tok)] {
			b.AbbreviatedCount++
		}
		if isDescriptive(tok) {
			b.DescriptiveCount++
		}
	}
	if b.IdentifierCount > 0 {
		b.AvgIdentifierLength = float64(lengthSum) / float64(b.IdentifierCount)
	}
	if b.CodeLines > 0 {
		b.VerboseRatio = float64(b.VerboseCount) / float64(b.CodeLines)
		b.AbbreviatedRatio = float64(b.AbbreviatedCount) / float64(b.CodeLines)
	}
}

// segmentCount counts semantic segments: snake_case parts plus camelCase humps.
func segmentCount(ident string) int {
	segments := 0
	for _, part := range strings.Split(ident, "_") {
		if part == "" {
			continue
		}
		segments++
		for i := 1; i < len(part); i++ {
			if part[i] >= 'A' && part[i] <= 'Z' && part[i-1] >= 'a' && part[i-1] <= 'z' {
				segments++
			}
		}
	}
	return segments
}

func isDescriptive(ident string) bool {
	lower := strings.ToLower(ident)
	for _, s := range descriptiveSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	for _, p := range descriptivePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func (b *FeatureBundle) extractComments(text string, commentLines []string) {
	if b.CodeLines > 0 {
		b.CommentRatio = float64(b.CommentLines) / float64(b.CodeLines)
	}
	b.InformalMarkers = len(reInformal.FindAllString(text, -1))
	if len(commentLines) > 0 {
		sum := 0
		for _, c := range commentLines {
			sum += len(c)
		}
		b.AvgCommentLength = float64(sum) / float64(len(commentLines))
	}
}

func (b *FeatureBundle) extractLayout(text string, lines []string) {
	// Dominant indentation residue mod 4, over indented lines only.
	residues := [4]int{}
	indented := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := len(line) - len(strings.TrimLeft(line, " \t"))
		if lead > 0 {
			residues[lead%4]++
			indented++
		}
	}
	if indented > 0 {
		best := 0
		for _, n := range residues {
			if n > best {
				best = n
			}
		}
		b.IndentConsistency = float64(best) / float64(indented)
	}

	if b.NonBlankLines > 0 {
		b.BlankLineRatio = float64(strings.Count(text, "\n\n")) / float64(b.NonBlankLines)
	}
}

func (b *FeatureBundle) extractControlFlow(text string) {
	b.ControlStructures = len(reControl.FindAllString(text, -1))
	b.NestingIndicators = strings.Count(text, "    if") + strings.Count(text, "        if")
	if b.ControlStructures > 0 {
		b.NestingRatio = float64(b.NestingIndicators) / float64(b.ControlStructures)
	}
}

func (b *FeatureBundle) extractDefensive(text string) {
	b.TryBlocks = len(reTry.FindAllString(text, -1))
	b.CatchBlocks = len(reCatch.FindAllString(text, -1))
	b.FinallyBlocks = len(reFinally.FindAllString(text, -1))
	b.NullChecks = len(reNullCheck.FindAllString(text, -1))
	if b.NonBlankLines > 0 {
		total := b.TryBlocks + b.CatchBlocks + b.FinallyBlocks + b.NullChecks
		b.DefensiveRatio = float64(total) / float64(b.NonBlankLines)
	}
}

func (b *FeatureBundle) extractDocumentation(text string) {
	b.Definitions = len(reDefinition.FindAllString(text, -1))
	if b.Definitions > 0 {
		b.DocumentedRatio = float64(b.FormalBlocks) / float64(b.Definitions)
	}
}

func (b *FeatureBundle) extractSpacing(text string) {
	spaced := len(reSpacedOp.FindAllString(text, -1))
	total := len(reAnyOp.FindAllString(text, -1))
	if total > 0 {
		b.SpacingConsistency = float64(spaced) / float64(total)
	}
}

func (b *FeatureBundle) extractModernity(text string) {
	b.ModernTokens = len(reTypeHint.FindAllString(text, -1)) +
		len(reFString.FindAllString(text, -1)) +
		len(reAwait.FindAllString(text, -1)) +
		len(reAsync.FindAllString(text, -1)) +
		len(reWith.FindAllString(text, -1))

	b.LegacyTokens = len(reVarDecl.FindAllString(text, -1)) +
		len(rePrototype.FindAllString(text, -1)) +
		len(rePrintf.FindAllString(text, -1))
}
