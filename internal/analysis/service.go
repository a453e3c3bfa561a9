// Package analysis runs a resume against a job posting through the model
// and turns the reply into structured recommendations.
package analysis

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-recommender/internal/db"
	"github.com/jonathan/resume-recommender/internal/ingestion"
	"github.com/jonathan/resume-recommender/internal/llm"
	"github.com/jonathan/resume-recommender/internal/parsing"
	"github.com/jonathan/resume-recommender/internal/prompts"
	"golang.org/x/sync/errgroup"
)

// Store persists analyses. *db.DB satisfies it.
type Store interface {
	SaveAnalysis(ctx context.Context, input *db.AnalysisInput) (*db.Analysis, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*db.Analysis, error)
	ListAnalyses(ctx context.Context, limit, offset int) ([]db.AnalysisSummary, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) error
}

// JobFetcher downloads a job posting.
type JobFetcher func(ctx context.Context, url string) (*ingestion.JobPosting, error)

// Service coordinates ingestion, the model call and parsing.
type Service struct {
	client   llm.Client
	store    Store
	fetchJob JobFetcher
	verbose  bool
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithStore enables persistence of completed analyses.
func WithStore(store Store) Option {
	return func(s *Service) { s.store = store }
}

// WithJobOptions sets how job postings are fetched.
func WithJobOptions(opts *ingestion.JobOptions) Option {
	return func(s *Service) {
		s.fetchJob = func(ctx context.Context, url string) (*ingestion.JobPosting, error) {
			return ingestion.FetchJobPosting(ctx, url, opts)
		}
	}
}

// WithJobFetcher replaces job posting retrieval entirely.
func WithJobFetcher(fetcher JobFetcher) Option {
	return func(s *Service) { s.fetchJob = fetcher }
}

// WithVerbose enables progress logging.
func WithVerbose(verbose bool) Option {
	return func(s *Service) { s.verbose = verbose }
}

// NewService creates a Service around an LLM client.
func NewService(client llm.Client, opts ...Option) *Service {
	s := &Service{
		client: client,
		now:    time.Now,
	}
	WithJobOptions(nil)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasStore reports whether analyses are persisted.
func (s *Service) HasStore() bool {
	return s.store != nil
}

// Analyze reads the resume and job posting concurrently, asks the model for
// a review and parses it. A storage failure is logged and the result is
// still returned, without an ID.
func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var (
		resumeText string
		job        = &ingestion.JobPosting{URL: req.JobURL, Text: ingestion.CleanText(req.JobText)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if req.ResumeText != "" {
			resumeText = ingestion.CleanText(req.ResumeText)
			return nil
		}
		text, err := ingestion.ExtractResumeText(req.ResumeFilename, req.ResumeData)
		if err != nil {
			return &IngestionError{Source: "resume", Err: err}
		}
		resumeText = text
		return nil
	})
	if req.JobText == "" {
		g.Go(func() error {
			posting, err := s.fetchJob(gctx, req.JobURL)
			if err != nil {
				return &IngestionError{Source: "job posting", Err: err}
			}
			job = posting
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	req.report(StageIngested)

	if s.verbose {
		log.Printf("[analyze] resume %d chars, job posting %d chars", len(resumeText), len(job.Text))
	}

	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeyAnalyzeResume, map[string]string{
		"Resume":     resumeText,
		"JobPosting": job.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis prompt: %w", err)
	}

	req.report(StageAnalyzing)
	raw, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Operation: "resume analysis", Err: err}
	}
	message := llm.StripCodeFence(raw)

	recs := parsing.ParseRecommendations(message)
	result := &Result{
		Status:          StatusSuccess,
		Message:         message,
		ResumeContent:   resumeText,
		JobContent:      job.Text,
		JobTitle:        job.Title,
		Recommendations: recs,
		Structured:      len(recs) > 0,
		Note:            detectNote(message),
		Model:           s.client.GetModel(llm.TierStandard),
		CreatedAt:       s.now().UTC(),
	}
	if s.verbose {
		log.Printf("[analyze] %d recommendations parsed", len(recs))
	}
	req.report(StageParsed)

	if s.store != nil {
		saved, err := s.store.SaveAnalysis(ctx, &db.AnalysisInput{
			JobURL:          req.JobURL,
			JobTitle:        job.Title,
			JobPlatform:     string(job.Platform),
			ResumeFilename:  req.ResumeFilename,
			ResumeContent:   resumeText,
			JobContent:      job.Text,
			RawResponse:     message,
			Recommendations: recs,
			Model:           result.Model,
		})
		if err != nil {
			log.Printf("[analyze] failed to save analysis: %v", err)
		} else {
			result.ID = saved.ID
			result.CreatedAt = saved.CreatedAt
		}
	}

	return result, nil
}

// Chat answers a follow-up question grounded in the resume and job posting.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &RequestError{Field: "message", Message: "is required"}
	}
	if strings.TrimSpace(req.ResumeContent) == "" || strings.TrimSpace(req.JobContent) == "" {
		return nil, ErrMissingContext
	}

	previous := req.Context
	if previous == "" {
		previous = "None"
	}
	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeyChat, map[string]string{
		"Resume":     req.ResumeContent,
		"JobPosting": req.JobContent,
		"Context":    previous,
		"Message":    req.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build chat prompt: %w", err)
	}

	text, err := s.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Operation: "chat", Err: err}
	}

	return &ChatReply{
		ID:        uuid.NewString(),
		Text:      strings.TrimSpace(text),
		Sender:    SenderBot,
		Timestamp: s.now().UTC(),
	}, nil
}

// ChatAbout answers a question using a stored analysis as context.
func (s *Service) ChatAbout(ctx context.Context, id uuid.UUID, message string) (*ChatReply, error) {
	stored, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Chat(ctx, ChatRequest{
		Message:       message,
		ResumeContent: stored.ResumeContent,
		JobContent:    stored.JobContent,
		Context:       stored.RawResponse,
	})
}

// Load reads a stored analysis.
func (s *Service) Load(ctx context.Context, id uuid.UUID) (*db.Analysis, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	stored, err := s.store.GetAnalysis(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis %s: %w", id, err)
	}
	if stored == nil {
		return nil, ErrNotFound
	}
	return stored, nil
}

// List returns stored analyses, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]db.AnalysisSummary, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.ListAnalyses(ctx, limit, offset)
}

// Delete removes a stored analysis.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Load(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteAnalysis(ctx, id)
}

func validateRequest(req Request) error {
	if req.ResumeText == "" && len(req.ResumeData) == 0 {
		return &RequestError{Field: "resume", Message: "is required"}
	}
	if req.ResumeText == "" && !ingestion.AllowedResumeFile(req.ResumeFilename, nil) {
		return &IngestionError{Source: "resume", Err: &ingestion.UnsupportedFormatError{
			Filename:  req.ResumeFilename,
			Extension: strings.ToLower(filepath.Ext(req.ResumeFilename)),
		}}
	}
	if strings.TrimSpace(req.JobURL) == "" && strings.TrimSpace(req.JobText) == "" {
		return &RequestError{Field: "job_link", Message: "is required"}
	}
	return nil
}

func detectNote(message string) string {
	lower := strings.ToLower(message)
	for _, phrase := range jobNotExtractedPhrases {
		if strings.Contains(lower, phrase) {
			return JobNotExtractedNote
		}
	}
	return ""
}
