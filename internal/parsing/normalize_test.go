package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty string", "", ""},
		{"Whitespace only", "  \n\t\n  ", ""},
		{"Lone asterisk", "*", ""},
		{"Lone bullet glyph", "•", ""},
		{"Plain line unchanged", "Use consistent bullet style.", "Use consistent bullet style."},
		{"Asterisk bullets", "* Docker\n* Kubernetes", "Docker\n\nKubernetes"},
		{"Bullet glyphs with indentation", "  • Docker\n\t•  Terraform", "Docker\n\nTerraform"},
		{"Double emphasis removed", "**Bold** statement", "Bold statement"},
		{"Unbalanced single marker removed", "stray *marker here", "stray marker here"},
		{"Label line emphasized", "Cloud: AWS and GCP", "**Cloud:** AWS and GCP"},
		{"Bold label normalized", "* **Cloud:** AWS", "**Cloud:** AWS"},
		{"Split at first colon", "Time: 10:30 daily", "**Time:** 10:30 daily"},
		{"Leading colon passes through", ": orphan value", ": orphan value"},
		{"Label with empty rest", "Note:", "**Note:**"},
		{"Blank line runs collapse", "First\n\n\n\nSecond", "First\n\nSecond"},
		{"Each line becomes a paragraph", "one\ntwo\nthree", "one\n\ntwo\n\nthree"},
		{"Lines trimmed independently", "   padded   \n\tindented\t", "padded\n\nindented"},
		{"CRLF input", "* Docker\r\n* Go", "Docker\n\nGo"},
		{"Repeated bullets stripped", "• • nested", "nested"},
		{"NBSP before bullet", "\u00a0• Docker", "Docker"},
		{"Form feed before bullet", "\f* Go", "Go"},
		{"Carriage return before lone bullet", "\r•", ""},
		{"NBSP between bullets", "•\u00a0• Go", "Go"},
		{"Em space and vertical tab around bullets", "\u2003•\v• nested", "nested"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeContent(tt.input))
		})
	}
}

func TestNormalizeContent_Idempotent(t *testing.T) {
	inputs := []string{
		"* Docker\n* Kubernetes",
		"**Leadership:** mentor two engineers\n\n\n* Ownership: drive the roadmap",
		"Time: 10:30 daily\n•  • odd bullets\n: leading colon",
		"plain prose with no structure at all",
		"  **Quantify impact**: reduced latency by 40%  ",
		"• \n*\n\t\n",
		"\u00a0• Docker",
		"***\r•",
		"\u2003•\v• nested\n\f•",
	}

	for _, input := range inputs {
		once := NormalizeContent(input)
		twice := NormalizeContent(once)
		assert.Equal(t, once, twice, "normalizing %q twice should be stable", input)
	}
}

func TestEmphasizeLabels(t *testing.T) {
	assert.Equal(t, "**Skill:** Go\nno label", emphasizeLabels("Skill: Go\nno label"))
	assert.Equal(t, ":x", emphasizeLabels(":x"))
}

func TestCollapseBlankLines(t *testing.T) {
	assert.Equal(t, "a\n\nb\n\nc", collapseBlankLines("a\n\n  \n\t\nb\n\nc"))
	assert.Equal(t, "", collapseBlankLines(""))
}

func TestStripBullets_LeavesOtherLines(t *testing.T) {
	assert.Equal(t, "Docker\n  indented text", stripBullets("* Docker\n  indented text"))
}
