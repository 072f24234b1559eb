package analysis

// Language is a lexical hint derived from a file extension. The extractor is
// language-agnostic; the hint is carried through to reports and breakdowns.
type Language string

const (
	LangPython     Language = "Python"
	LangJavaScript Language = "JavaScript"
	LangTypeScript Language = "TypeScript"
	LangJava       Language = "Java"
	LangC          Language = "C"
	LangCPP        Language = "C++"
	LangCSharp     Language = "C#"
	LangGo         Language = "Go"
	LangRuby       Language = "Ruby"
	LangPHP        Language = "PHP"
	LangRust       Language = "Rust"
	LangSwift      Language = "Swift"
	LangKotlin     Language = "Kotlin"
	LangScala      Language = "Scala"
	LangShell      Language = "Shell"
	LangUnknown    Language = "Unknown"
)

// SourceSample is one unit of work: already-decoded source text plus a
// language hint. It is never mutated after construction.
type SourceSample struct {
	Text     string
	Language Language
}

// Dimension identifies one of the eight heuristic lenses.
type Dimension string

const (
	DimNaming          Dimension = "naming"
	DimComments        Dimension = "comments"
	DimStructure       Dimension = "structure"
	DimComplexity      Dimension = "complexity"
	DimErrorHandling   Dimension = "error_handling"
	DimDocumentation   Dimension = "documentation"
	DimFormatting      Dimension = "formatting"
	DimSyntaxModernity Dimension = "syntax_modernity"
)

// Dimensions is the canonical scoring order. The aggregator requires exactly
// this set, each dimension once.
var Dimensions = [8]Dimension{
	DimNaming,
	DimComments,
	DimStructure,
	DimComplexity,
	DimErrorHandling,
	DimDocumentation,
	DimFormatting,
	DimSyntaxModernity,
}

// DimensionScore is the output of a single dimension analyzer: a value in
// [0,1] plus the raw metrics that produced it, kept for explainability.
type DimensionScore struct {
	Name    Dimension          `json:"name"`
	Value   float64            `json:"value"`
	Metrics map[string]float64 `json:"metrics"`
}

// Confidence is a coarse reliability label derived from agreement among the
// eight dimension scores.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Verdict is the final human-readable classification.
type Verdict string

const (
	VerdictLikelyHuman  Verdict = "LIKELY_HUMAN"
	VerdictMixed        Verdict = "MIXED"
	VerdictPossiblyAI   Verdict = "POSSIBLY_AI"
	VerdictLikelyAI     Verdict = "LIKELY_AI"
	VerdictInconclusive Verdict = "INCONCLUSIVE"
)

// DetectedPatterns carries pattern examples surfaced during extraction. They
// are attached to results for explainability and never feed the aggregate.
type DetectedPatterns struct {
	AIPhrases       []string `json:"ai_phrases,omitempty"`
	ObviousComments []string `json:"obvious_comments,omitempty"`
	MissingQuirks   []string `json:"missing_quirks,omitempty"`
}

// Result is the assembled per-sample output. Created once per SourceSample
// and immutable thereafter; ownership transfers to the caller.
type Result struct {
	AIProbability    float64          `json:"ai_probability"`
	HumanProbability float64          `json:"human_probability"`
	Dimensions       []DimensionScore `json:"dimensions"`
	Variance         float64          `json:"variance"`
	Confidence       Confidence       `json:"confidence"`
	Verdict          Verdict          `json:"verdict"`
	Lines            int              `json:"lines"`
	Patterns         DetectedPatterns `json:"patterns"`
}

// FileResult ties a Result to the file it was computed from. This is the
// record handed to the batch driver and report generator.
type FileResult struct {
	Path     string   `json:"path"`
	Language Language `json:"language"`
	Result
	Error string `json:"error,omitempty"`
}
