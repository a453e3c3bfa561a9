package analysis

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-recommender/internal/types"
)

// StatusSuccess is the status reported for a completed analysis.
const StatusSuccess = "success"

// SenderBot marks chat replies produced by the model.
const SenderBot = "bot"

// JobNotExtractedNote is attached when the model says it could not read the
// job posting.
const JobNotExtractedNote = "Note: Job posting content couldn't be extracted automatically. Analysis based on general resume optimization best practices."

// jobNotExtractedPhrases are matched case-insensitively against the raw response.
var jobNotExtractedPhrases = []string{
	"couldn't be extracted automatically",
	"could not be extracted automatically",
	"job posting content could not be read",
	"job posting content couldn't be read",
}

// Stages reported through Request.Progress, in order.
const (
	StageIngested  = "ingested"
	StageAnalyzing = "analyzing"
	StageParsed    = "parsed"
)

// Request describes one analysis. The resume is given either as an uploaded
// file (ResumeFilename + ResumeData) or as already extracted text; the job
// as a URL or as text.
type Request struct {
	ResumeFilename string
	ResumeData     []byte
	ResumeText     string
	JobURL         string
	JobText        string

	// Progress, when set, is called as each stage completes.
	Progress func(stage string)
}

func (r Request) report(stage string) {
	if r.Progress != nil {
		r.Progress(stage)
	}
}

// Result is a completed analysis.
type Result struct {
	ID              uuid.UUID              `json:"analysis_id,omitzero"`
	Status          string                 `json:"status"`
	Message         string                 `json:"message"`
	ResumeContent   string                 `json:"resume_content"`
	JobContent      string                 `json:"job_content"`
	JobTitle        string                 `json:"job_title,omitempty"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Structured      bool                   `json:"structured"`
	Note            string                 `json:"note,omitempty"`
	Model           string                 `json:"model,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// ChatRequest is a follow-up question about an analysis.
type ChatRequest struct {
	Message       string
	ResumeContent string
	JobContent    string
	// Context is the previous analysis text, if any.
	Context string
}

// ChatReply is the model's answer to a ChatRequest.
type ChatReply struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}
