package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("**1. Current "), genai.Text("Score (0-100):** 70")}}},
		},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "**1. Current Score (0-100):** 70", text)
}

func TestExtractTextFromResponse_Empty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, "no candidates"},
		{"no candidates", &genai.GenerateContentResponse{}, "no candidates"},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, "no content"},
		{
			"no text parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}},
			}},
			"no text parts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
