package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-recommender/internal/analysis"
	"github.com/jonathan/resume-recommender/internal/config"
	"github.com/jonathan/resume-recommender/internal/db"
	"github.com/jonathan/resume-recommender/internal/ingestion"
	"github.com/jonathan/resume-recommender/internal/observability"
	"github.com/jonathan/resume-recommender/internal/render"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Review a resume against a job posting",
	Long: `Read a resume (.pdf, .docx or .txt) and a job posting (URL or saved text),
ask the model for a structured review and print the recommendations.`,
	RunE: runAnalyze,
}

var (
	analyzeFlags      config.Config
	analyzeConfigFile string
	analyzeTimeout    time.Duration
)

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeFlags.Resume, "resume", "r", "", "Path to resume file (.pdf, .docx, .txt)")
	f.StringVar(&analyzeFlags.JobURL, "job-url", "", "URL of the job posting")
	f.StringVar(&analyzeFlags.JobFile, "job-file", "", "Path to saved job posting text")
	f.StringVar(&analyzeConfigFile, "config", "", "Config file (JSON or YAML)")
	f.StringVar(&analyzeFlags.APIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	f.StringVar(&analyzeFlags.Model, "model", "", "Model for the analysis call")
	f.IntVar(&analyzeFlags.DailyLimit, "daily-limit", 0, "Maximum model calls per day (default 100)")
	f.BoolVar(&analyzeFlags.UseBrowser, "use-browser", false, "Render JavaScript-heavy job pages with headless Chrome")
	f.StringVar(&analyzeFlags.DatabaseURL, "db-url", "", "Database URL; stores the analysis when set")
	f.StringVar(&analyzeFlags.Format, "format", "", "Output format: json, text or html (default text)")
	f.BoolVarP(&analyzeFlags.Verbose, "verbose", "v", false, "Print ingested documents and progress")
	f.DurationVar(&analyzeTimeout, "timeout", 3*time.Minute, "Overall timeout")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(analyzeFlags, analyzeConfigFile)
	if err != nil {
		return err
	}
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required")
	}
	if cfg.JobURL == "" && cfg.JobFile == "" {
		return fmt.Errorf("either --job-url or --job-file is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	req, err := buildAnalyzeRequest(cfg)
	if err != nil {
		return err
	}

	client, err := newModelClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	opts := []analysis.Option{
		analysis.WithJobOptions(&ingestion.JobOptions{UseBrowser: cfg.UseBrowser, Verbose: cfg.Verbose}),
		analysis.WithVerbose(cfg.Verbose),
	}
	if cfg.DatabaseURL != "" {
		database, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		opts = append(opts, analysis.WithStore(database))
	}

	result, err := analysis.NewService(client, opts...).Analyze(ctx, req)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintDocument("RESUME", result.ResumeContent)
		printer.PrintDocument("JOB POSTING", result.JobContent)
		fmt.Fprintf(cmd.ErrOrStderr(), "Model calls remaining today: %d\n", client.Limiter().Remaining())
	}

	return writeAnalysis(cmd.OutOrStdout(), result, cfg.Format)
}

// buildAnalyzeRequest reads the resume file and, when given, the saved posting.
func buildAnalyzeRequest(cfg config.Config) (analysis.Request, error) {
	data, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return analysis.Request{}, fmt.Errorf("failed to read resume: %w", err)
	}
	req := analysis.Request{
		ResumeFilename: filepath.Base(cfg.Resume),
		ResumeData:     data,
		JobURL:         cfg.JobURL,
	}
	if cfg.JobFile != "" {
		job, err := os.ReadFile(cfg.JobFile)
		if err != nil {
			return analysis.Request{}, fmt.Errorf("failed to read job file: %w", err)
		}
		req.JobText = string(job)
	}
	return req, nil
}

// writeAnalysis prints a finished analysis. Text output falls back to the
// raw response when nothing structured was found.
func writeAnalysis(out io.Writer, result *analysis.Result, format string) error {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case config.FormatHTML:
		_, err := fmt.Fprintln(out, render.HTMLDocument(result.Recommendations))
		return err
	case "", config.FormatText:
		printer := observability.NewPrinter(out)
		printer.PrintNote(result.Note)
		printer.PrintRecommendations(result.Recommendations)
		if !result.Structured {
			fmt.Fprintln(out, result.Message)
		}
		if result.ID != uuid.Nil {
			fmt.Fprintf(out, "Analysis ID: %s\n", result.ID)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json, text or html)", format)
	}
}

func openDatabase(ctx context.Context, databaseURL string) (*db.DB, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}
