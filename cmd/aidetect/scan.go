package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aidetect/internal/analysis"
	"aidetect/internal/database"
	"aidetect/internal/report"
	"aidetect/internal/scanner"
)

var (
	scanBranch   string
	scanJSONOut  string
	scanHTMLOut  string
	scanDataDir  string
	scanNoSave   bool
	historyLimit int
)

var scanCmd = &cobra.Command{
	Use:   "scan <repository-url|directory>",
	Short: "Scan a repository or directory and record the result",
	Long: `Scan clones a remote repository (shallow) or walks a local directory,
scores every code file, prints a summary, and records the scan in the
local history database.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scans, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	scanCmd.Flags().StringVarP(&scanBranch, "branch", "b", "", "branch to scan (remote repositories only)")
	scanCmd.Flags().StringVar(&scanJSONOut, "json", "", "write a JSON report to this path")
	scanCmd.Flags().StringVar(&scanHTMLOut, "html", "", "write an HTML report to this path")
	scanCmd.Flags().StringVar(&scanDataDir, "data-dir", "./data", "scan history directory")
	scanCmd.Flags().BoolVar(&scanNoSave, "no-save", false, "do not record the scan in history")
	rootCmd.AddCommand(scanCmd)

	historyCmd.Flags().StringVar(&scanDataDir, "data-dir", "./data", "scan history directory")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of scans to list")
	rootCmd.AddCommand(historyCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]

	cfg, err := scanConfig()
	if err != nil {
		return err
	}

	sc := scanner.New(cfg, analysis.NewAnalyzer(), cliLogger())

	var result *scanner.Result
	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		result, err = sc.ScanDirectory(cmd.Context(), target)
	} else {
		result, err = sc.ScanRepository(cmd.Context(), target, scanBranch)
	}
	if err != nil {
		return err
	}

	if !scanNoSave {
		if saveErr := saveScan(result); saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record scan: %v\n", saveErr)
		}
	}

	return emitReports(result, false, scanJSONOut, scanHTMLOut)
}

func saveScan(result *scanner.Result) error {
	db, err := database.NewDB(scanDataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := database.NewRepository(db)

	record := database.NewScanRecord(result.Source, result.Branch)
	record.FilesScanned = result.Stats.FilesScanned
	record.FilesFailed = result.Stats.FilesFailed
	record.AvgProbability = result.Stats.AvgProbability
	record.MedianProbability = result.Stats.MedianProbability
	record.HighRiskCount = len(result.Stats.HighRisk)
	record.VerdictCounts = result.Stats.VerdictCounts
	record.DurationMs = result.Duration.Milliseconds()

	files := make([]database.ScanFileRecord, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, database.ScanFileRecord{
			ScanID:        record.ID,
			Path:          f.Path,
			Language:      string(f.Language),
			AIProbability: f.AIProbability,
			Confidence:    string(f.Confidence),
			Verdict:       string(f.Verdict),
			Lines:         f.Lines,
			Error:         f.Error,
		})
	}

	return repo.SaveScan(record, files)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := database.NewDB(scanDataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := database.NewRepository(db).ListScans(historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("no recorded scans")
		return nil
	}

	report.WriteHistory(os.Stdout, records)
	return nil
}
