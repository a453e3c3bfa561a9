package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-recommender/internal/types"
)

// SaveAnalysis stores a completed analysis and returns the saved record.
func (db *DB) SaveAnalysis(ctx context.Context, input *AnalysisInput) (*Analysis, error) {
	recs := input.Recommendations
	if recs == nil {
		recs = []types.Recommendation{}
	}
	recsJSON, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	platform := input.JobPlatform
	if platform == "" {
		platform = "unknown"
	}
	current, target := scores(recs)

	a := &Analysis{
		JobURL:          input.JobURL,
		JobTitle:        input.JobTitle,
		JobPlatform:     platform,
		ResumeFilename:  input.ResumeFilename,
		ResumeContent:   input.ResumeContent,
		JobContent:      input.JobContent,
		RawResponse:     input.RawResponse,
		Recommendations: recs,
		CurrentScore:    current,
		TargetScore:     target,
		Model:           input.Model,
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (job_url, job_title, job_platform, resume_filename, resume_content,
		                       job_content, raw_response, recommendations, current_score, target_score, model)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		a.JobURL, a.JobTitle, a.JobPlatform, a.ResumeFilename, a.ResumeContent,
		a.JobContent, a.RawResponse, recsJSON, a.CurrentScore, a.TargetScore, a.Model,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	return a, nil
}

// GetAnalysis retrieves an analysis by ID. Returns nil, nil when not found.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	var recsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, job_url, job_title, job_platform, resume_filename, resume_content,
		        job_content, raw_response, recommendations, current_score, target_score,
		        model, created_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.JobURL, &a.JobTitle, &a.JobPlatform, &a.ResumeFilename, &a.ResumeContent,
		&a.JobContent, &a.RawResponse, &recsJSON, &a.CurrentScore, &a.TargetScore,
		&a.Model, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if err := json.Unmarshal(recsJSON, &a.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations for %s: %w", id, err)
	}

	return &a, nil
}

// ListAnalyses returns the newest analyses first.
func (db *DB) ListAnalyses(ctx context.Context, limit, offset int) ([]AnalysisSummary, error) {
	if offset < 0 {
		offset = 0
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, job_url, job_title, current_score, target_score, created_at
		 FROM analyses
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		clampLimit(limit), offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := []AnalysisSummary{}
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(&s.ID, &s.JobURL, &s.JobTitle, &s.CurrentScore, &s.TargetScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return summaries, nil
}

// DeleteAnalysis removes an analysis. Deleting a missing ID is not an error.
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	return nil
}
