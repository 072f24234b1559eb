package analysis

import (
	"regexp"
	"strings"
)

// Pattern detection surfaces concrete examples for reports. Nothing here
// feeds the aggregate probability; the dimension rule table is the only
// scoring path.

const maxPatternExamples = 5

var aiPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`check\s+that`),
	regexp.MustCompile(`ensure\s+that`),
	regexp.MustCompile(`make\s+sure`),
	regexp.MustCompile(`initialize\s+the`),
	regexp.MustCompile(`set\s+up\s+the`),
	regexp.MustCompile(`clean\s+up\s+the`),
	regexp.MustCompile(`verify\s+that`),
	regexp.MustCompile(`validate\s+that`),
	regexp.MustCompile(`this\s+function\s+(?:will|does|should)`),
	regexp.MustCompile(`this\s+method\s+(?:will|does|should)`),
	regexp.MustCompile(`the\s+following\s+(?:code|function|method)`),
	regexp.MustCompile(`handles?\s+the\s+case`),
	regexp.MustCompile(`returns?\s+the\s+result`),
	regexp.MustCompile(`loop\s+through\s+(?:the|all|each)`),
	regexp.MustCompile(`iterate\s+over\s+(?:the|all|each)`),
}

type obviousPattern struct {
	re    *regexp.Regexp
	label string
}

var obviousCommentPatterns = []obviousPattern{
	{regexp.MustCompile(`(?:#|//)\s*increment\s+\w+`), "Increment variable"},
	{regexp.MustCompile(`(?:#|//)\s*decrement\s+\w+`), "Decrement variable"},
	{regexp.MustCompile(`(?:#|//)\s*initialize\s+(?:the\s+)?\w+`), "Initialize variable"},
	{regexp.MustCompile(`(?:#|//)\s*set\s+\w+\s+to`), "Set variable to"},
	{regexp.MustCompile(`(?:#|//)\s*return\s+(?:the\s+)?(?:result|value)`), "Return result"},
	{regexp.MustCompile(`(?:#|//)\s*loop\s+through`), "Loop through"},
	{regexp.MustCompile(`(?:#|//)\s*iterate\s+over`), "Iterate over"},
	{regexp.MustCompile(`(?:#|//)\s*check\s+if`), "Check if"},
	{regexp.MustCompile(`(?:#|//)\s*create\s+(?:a\s+)?new`), "Create new"},
	{regexp.MustCompile(`(?:#|//)\s*call\s+(?:the\s+)?\w+`), "Call function"},
}

var (
	reQuirkMarker    = regexp.MustCompile(`(?i)(?:#|//)\s*(?:TODO|FIXME|HACK|NOTE|XXX)`)
	reTempName       = regexp.MustCompile(`\b(?:tmp|temp|foo|bar|baz|xxx|yyy|zzz)\b`)
	reDebugArtifact  = regexp.MustCompile(`console\.log|print\s*\(|\bdebugger\b|System\.out\.print`)
	reCommentedCode  = regexp.MustCompile(`(?:#\s*(?:if|for|while|def|class|return|import)\s)|(?://\s*(?:if|for|while|function|class|return|import)\s)`)
)

// detectPatterns collects explainability examples. Quirk absence is only
// meaningful on samples with some substance, so tiny inputs report none.
func detectPatterns(text string, commentLines []string, nonBlank int) DetectedPatterns {
	var p DetectedPatterns

	for _, comment := range commentLines {
		lower := strings.ToLower(comment)
		for _, re := range aiPhrasePatterns {
			if re.MatchString(lower) && len(p.AIPhrases) < maxPatternExamples {
				p.AIPhrases = append(p.AIPhrases, trimExample(comment))
				break
			}
		}
		for _, op := range obviousCommentPatterns {
			if op.re.MatchString(lower) && len(p.ObviousComments) < maxPatternExamples {
				p.ObviousComments = append(p.ObviousComments, op.label)
				break
			}
		}
	}

	if nonBlank >= 10 {
		if !reQuirkMarker.MatchString(text) {
			p.MissingQuirks = append(p.MissingQuirks, "no TODO/FIXME/HACK/NOTE/XXX comments")
		}
		if !reTempName.MatchString(text) {
			p.MissingQuirks = append(p.MissingQuirks, "no throwaway names (tmp, temp, foo, bar)")
		}
		if !reDebugArtifact.MatchString(text) {
			p.MissingQuirks = append(p.MissingQuirks, "no debugging statements")
		}
		if !reCommentedCode.MatchString(text) {
			p.MissingQuirks = append(p.MissingQuirks, "no commented-out code")
		}
	}

	return p
}

func trimExample(s string) string {
	const max = 80
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
