package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"aidetect/internal/server"
)

var (
	servePort    string
	serveDataDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", envOrDefault("PORT", "8080"), "listen port")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", envOrDefault("DATA_DIR", "./data"), "scan history directory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.DefaultConfig()
	cfg.Port = servePort
	cfg.DataDir = serveDataDir

	scanCfg, err := scanConfig()
	if err != nil {
		return err
	}
	cfg.ScanConfig = scanCfg

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
