package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-recommender/internal/analysis"
	"github.com/jonathan/resume-recommender/internal/config"
	"github.com/jonathan/resume-recommender/internal/observability"
	"github.com/jonathan/resume-recommender/internal/parsing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnalyzeRequest(t *testing.T) {
	resume := writeTemp(t, "jane.txt", "Jane Doe\nGo engineer")
	job := writeTemp(t, "job.txt", "Requires Kafka")

	req, err := buildAnalyzeRequest(config.Config{Resume: resume, JobFile: job})
	require.NoError(t, err)
	assert.Equal(t, "jane.txt", req.ResumeFilename)
	assert.Equal(t, []byte("Jane Doe\nGo engineer"), req.ResumeData)
	assert.Equal(t, "Requires Kafka", req.JobText)
	assert.Empty(t, req.JobURL)

	req, err = buildAnalyzeRequest(config.Config{Resume: resume, JobURL: "https://jobs.example.com/1"})
	require.NoError(t, err)
	assert.Equal(t, "https://jobs.example.com/1", req.JobURL)
	assert.Empty(t, req.JobText)

	_, err = buildAnalyzeRequest(config.Config{Resume: filepath.Join(t.TempDir(), "missing.pdf")})
	assert.ErrorContains(t, err, "failed to read resume")
}

func sampleResult(id uuid.UUID) *analysis.Result {
	recs := parsing.ParseRecommendations(sampleResponse)
	return &analysis.Result{
		ID:              id,
		Status:          analysis.StatusSuccess,
		Message:         sampleResponse,
		Recommendations: recs,
		Structured:      len(recs) > 0,
	}
}

func TestWriteAnalysis_Text(t *testing.T) {
	id := uuid.New()
	var out bytes.Buffer

	require.NoError(t, writeAnalysis(&out, sampleResult(id), ""))

	assert.Contains(t, out.String(), "MISSING SKILLS")
	assert.Contains(t, out.String(), "Analysis ID: "+id.String())
	assert.NotContains(t, out.String(), "**1. Current Score")
}

func TestWriteAnalysis_UnstructuredShowsRaw(t *testing.T) {
	result := &analysis.Result{
		Status:          analysis.StatusSuccess,
		Message:         "Your resume reads well.",
		Recommendations: nil,
		Note:            analysis.JobNotExtractedNote,
	}
	var out bytes.Buffer

	require.NoError(t, writeAnalysis(&out, result, config.FormatText))

	assert.Contains(t, out.String(), "NOTE")
	assert.Contains(t, out.String(), observability.NoRecommendationsMessage)
	assert.Contains(t, out.String(), "Your resume reads well.")
	assert.NotContains(t, out.String(), "Analysis ID")
}

func TestWriteAnalysis_JSONAndHTML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeAnalysis(&out, sampleResult(uuid.New()), config.FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "success", decoded["status"])
	assert.Len(t, decoded["recommendations"], 3)

	out.Reset()
	require.NoError(t, writeAnalysis(&out, sampleResult(uuid.Nil), config.FormatHTML))
	assert.Contains(t, out.String(), `data-section="missing_skills"`)

	assert.Error(t, writeAnalysis(&out, sampleResult(uuid.Nil), "xml"))
}
