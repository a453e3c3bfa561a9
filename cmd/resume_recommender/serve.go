package main

import (
	"fmt"

	"github.com/jonathan/resume-recommender/internal/config"
	"github.com/jonathan/resume-recommender/internal/ingestion"
	"github.com/jonathan/resume-recommender/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing /api/analyze, /api/chat and /api/parse.
DATABASE_URL enables stored analyses; SESSION_SECRET enables chat session tokens.`,
	RunE: runServe,
}

var (
	serveFlags      config.Config
	serveConfigFile string
	serveAllowDocx   bool
)

func init() {
	f := serveCmd.Flags()
	f.IntVar(&serveFlags.Port, "port", 0, "Port to listen on (default 8080, or PORT)")
	f.StringVar(&serveConfigFile, "config", "", "Config file (JSON or YAML)")
	f.BoolVar(&serveFlags.UseBrowser, "use-browser", false, "Render JavaScript-heavy job pages with headless Chrome")
	f.BoolVar(&serveAllowDocx, "allow-docx", false, "Accept .docx and .txt uploads in addition to PDF")
	f.BoolVarP(&serveFlags.Verbose, "verbose", "v", false, "Log ingestion and parsing progress")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveFlags, serveConfigFile)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.Port == 0 {
		cfg.Port = config.DefaultPort
	}

	srvCfg := server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		APIKey:      cfg.APIKey,
		LLM:         llmConfig(cfg),
		DailyLimit:  cfg.DailyLimit,
		UseBrowser:  cfg.UseBrowser,
		Verbose:     cfg.Verbose,
	}
	if serveAllowDocx {
		srvCfg.AllowedExtensions = ingestion.DefaultResumeExtensions
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
