package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "markdown fence",
			input:    "```markdown\n**3. Missing Skills:**\n* Go\n```",
			expected: "**3. Missing Skills:**\n* Go",
		},
		{
			name:     "bare fence",
			input:    "```\n**2. Target Score:** 80\n```",
			expected: "**2. Target Score:** 80",
		},
		{
			name:     "no fence",
			input:    "  **2. Target Score:** 80  ",
			expected: "**2. Target Score:** 80",
		},
		{
			name:     "fence with text on first line",
			input:    "```Here is the review\nbody\n```",
			expected: "Here is the review\nbody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}
