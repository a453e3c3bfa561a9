package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-recommender/internal/types"
)

// DefaultListLimit caps ListAnalyses when no limit is given.
const DefaultListLimit = 20

// MaxListLimit is the largest page ListAnalyses returns.
const MaxListLimit = 100

// Analysis is a stored resume-versus-posting review.
type Analysis struct {
	ID              uuid.UUID              `json:"id"`
	JobURL          string                 `json:"job_url"`
	JobTitle        string                 `json:"job_title,omitempty"`
	JobPlatform     string                 `json:"job_platform"`
	ResumeFilename  string                 `json:"resume_filename,omitempty"`
	ResumeContent   string                 `json:"resume_content"`
	JobContent      string                 `json:"job_content"`
	RawResponse     string                 `json:"raw_response"`
	Recommendations []types.Recommendation `json:"recommendations"`
	CurrentScore    *int                   `json:"current_score,omitempty"`
	TargetScore     *int                   `json:"target_score,omitempty"`
	Model           string                 `json:"model,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// AnalysisInput holds the fields written by SaveAnalysis.
type AnalysisInput struct {
	JobURL          string
	JobTitle        string
	JobPlatform     string
	ResumeFilename  string
	ResumeContent   string
	JobContent      string
	RawResponse     string
	Recommendations []types.Recommendation
	Model           string
}

// AnalysisSummary is the list view of an analysis.
type AnalysisSummary struct {
	ID           uuid.UUID `json:"id"`
	JobURL       string    `json:"job_url"`
	JobTitle     string    `json:"job_title,omitempty"`
	CurrentScore *int      `json:"current_score,omitempty"`
	TargetScore  *int      `json:"target_score,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// scores pulls the score pair out of a recommendation list.
func scores(recs []types.Recommendation) (current, target *int) {
	for _, rec := range recs {
		if rec.Score != nil {
			c, t := rec.Score.Current, rec.Score.Target
			return &c, &t
		}
	}
	return nil, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
