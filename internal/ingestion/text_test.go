package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n  \n  ", ""},
		{"inner spaces collapse", "Line    with \t multiple    spaces", "Line with multiple spaces"},
		{"blank runs collapse", "Line 1\n\n\n\n\nLine 2", "Line 1\n\nLine 2"},
		{"line endings", "Line 1\r\nLine 2\rLine 3", "Line 1\nLine 2\nLine 3"},
		{"nested bullets keep indent", "- Go\n    - goroutines", "- Go\n    - goroutines"},
		{"plain lines lose indent", "    Experience", "Experience"},
		{"nul bytes dropped", "Go\x00lang", "Golang"},
		{"non-breaking space", "Senior\u00a0\u00a0Engineer", "Senior Engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}
