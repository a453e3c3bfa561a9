package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-recommender/internal/analysis"
	"github.com/jonathan/resume-recommender/internal/config"
	"github.com/jonathan/resume-recommender/internal/ingestion"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask a follow-up question about a resume and job posting",
	Long: `Ask the career advisor a question. Context comes from --resume and --job-file,
or from a stored analysis given by --analysis-id (requires --db-url or DATABASE_URL).`,
	RunE: runChat,
}

var (
	chatFlags       config.Config
	chatAnalysisID  string
	chatMessage     string
	chatContextFile string
)

func init() {
	f := chatCmd.Flags()
	f.StringVarP(&chatFlags.Resume, "resume", "r", "", "Path to resume file (.pdf, .docx, .txt)")
	f.StringVar(&chatFlags.JobFile, "job-file", "", "Path to saved job posting text")
	f.StringVar(&chatAnalysisID, "analysis-id", "", "ID of a stored analysis to use as context")
	f.StringVar(&chatContextFile, "context-file", "", "Previous analysis response to include as context")
	f.StringVarP(&chatMessage, "message", "m", "", "Question to ask")
	f.StringVar(&chatFlags.APIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	f.StringVar(&chatFlags.DatabaseURL, "db-url", "", "Database URL (required with --analysis-id)")

	_ = chatCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	useStored := chatAnalysisID != ""
	useFiles := chatFlags.Resume != "" || chatFlags.JobFile != ""
	if useStored && useFiles {
		return fmt.Errorf("cannot use --analysis-id with --resume/--job-file flags")
	}
	if !useStored && (chatFlags.Resume == "" || chatFlags.JobFile == "") {
		return fmt.Errorf("must provide either --analysis-id or both --resume and --job-file")
	}

	cfg, err := resolveConfig(chatFlags, "")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := newModelClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	var reply *analysis.ChatReply
	if useStored {
		id, err := uuid.Parse(chatAnalysisID)
		if err != nil {
			return fmt.Errorf("invalid --analysis-id: %w", err)
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--db-url or DATABASE_URL is required with --analysis-id")
		}
		database, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		reply, err = analysis.NewService(client, analysis.WithStore(database)).ChatAbout(ctx, id, chatMessage)
		if err != nil {
			return err
		}
	} else {
		req, err := chatRequestFromFiles(cfg.Resume, cfg.JobFile, chatContextFile)
		if err != nil {
			return err
		}
		req.Message = chatMessage
		reply, err = analysis.NewService(client).Chat(ctx, req)
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
	return err
}

// chatRequestFromFiles loads the chat context. contextPath is optional.
func chatRequestFromFiles(resumePath, jobPath, contextPath string) (analysis.ChatRequest, error) {
	resume, err := ingestion.ReadResumeFile(resumePath)
	if err != nil {
		return analysis.ChatRequest{}, err
	}
	job, err := os.ReadFile(jobPath)
	if err != nil {
		return analysis.ChatRequest{}, fmt.Errorf("failed to read job file: %w", err)
	}

	req := analysis.ChatRequest{
		ResumeContent: resume,
		JobContent:    ingestion.CleanText(string(job)),
	}
	if contextPath != "" {
		previous, err := os.ReadFile(contextPath)
		if err != nil {
			return analysis.ChatRequest{}, fmt.Errorf("failed to read context file: %w", err)
		}
		req.Context = string(previous)
	}
	return req, nil
}
