package main

import (
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"aidetect/internal/analysis"
	apperrors "aidetect/internal/errors"
	"aidetect/internal/report"
	"aidetect/internal/scanner"
)

var (
	analyzeExts     []string
	analyzeDetailed bool
	analyzeJSONOut  string
	analyzeHTMLOut  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|directory>...",
	Short: "Analyze local files or directories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeExts, "ext", "e", nil, "only analyze these extensions (e.g. py,js)")
	analyzeCmd.Flags().BoolVarP(&analyzeDetailed, "detailed", "d", false, "print a per-file dimension breakdown")
	analyzeCmd.Flags().StringVar(&analyzeJSONOut, "json", "", "write a JSON report to this path")
	analyzeCmd.Flags().StringVar(&analyzeHTMLOut, "html", "", "write an HTML report to this path")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := scanConfig()
	if err != nil {
		return err
	}
	cfg = cfg.RestrictExtensions(analyzeExts)

	analyzer := analysis.NewAnalyzer()
	sc := scanner.New(cfg, analyzer, cliLogger())

	start := time.Now()
	var files []analysis.FileResult

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return apperrors.NewValidationError("cannot access path", arg)
		}

		if info.IsDir() {
			res, err := sc.ScanDirectory(cmd.Context(), arg)
			if err != nil {
				return err
			}
			files = append(files, res.Files...)
			continue
		}

		files = append(files, analyzeSingleFile(cfg, analyzer, arg))
	}

	result := &scanner.Result{
		Source:   sourceLabel(args),
		Files:    files,
		Stats:    scanner.ComputeStats(files),
		Duration: time.Since(start),
	}

	return emitReports(result, analyzeDetailed, analyzeJSONOut, analyzeHTMLOut)
}

// analyzeSingleFile scores one explicitly named file. Unlike directory
// walks, named files bypass the extension filter.
func analyzeSingleFile(cfg scanner.Config, analyzer *analysis.Analyzer, path string) analysis.FileResult {
	lang := cfg.LanguageFor(filepath.Ext(path))
	fr := analysis.FileResult{Path: path, Language: lang}

	data, err := os.ReadFile(path)
	if err != nil {
		fr.Error = "read failed: " + err.Error()
		return fr
	}
	if !utf8.Valid(data) {
		fr.Error = "file is not valid UTF-8"
		return fr
	}

	result, err := analyzer.Analyze(analysis.SourceSample{Text: string(data), Language: lang})
	if err != nil {
		fr.Error = err.Error()
		return fr
	}

	fr.Result = result
	return fr
}

func sourceLabel(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return filepath.Dir(args[0])
}

// emitReports writes the requested outputs for a finished scan: console
// summary, optional per-file detail, JSON and HTML files.
func emitReports(result *scanner.Result, detailed bool, jsonOut, htmlOut string) error {
	doc := report.NewDocument(result)

	if !flagQuiet {
		doc.WriteSummary(os.Stdout)
	}

	if detailed {
		for i := range result.Files {
			report.WriteFileDetail(os.Stdout, &result.Files[i])
		}
	}

	if jsonOut != "" {
		if err := doc.WriteJSON(jsonOut); err != nil {
			return err
		}
	}
	if htmlOut != "" {
		if err := doc.WriteHTML(htmlOut); err != nil {
			return err
		}
	}
	return nil
}
