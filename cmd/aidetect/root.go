package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"aidetect/internal/monitoring"
	"aidetect/internal/scanner"
)

var (
	flagConfig  string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "aidetect",
	Short: "Heuristic detection of AI-generated code",
	Long: `aidetect scores source code on eight stylistic dimensions and reports
the probability that it was generated by an AI assistant, with a
confidence level and a verdict.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML scan config")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress the console summary")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func cliLogger() *monitoring.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return monitoring.NewTextLogger(level)
}

func scanConfig() (scanner.Config, error) {
	if flagConfig == "" {
		return scanner.DefaultConfig(), nil
	}
	return scanner.LoadConfig(flagConfig)
}
