package render

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-recommender/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestStyleFor(t *testing.T) {
	assert.Equal(t, "missing", StyleFor(types.SectionMissingSkills).Kind)
	assert.Equal(t, "border-red-500", StyleFor(types.SectionMissingSkills).Border)
	assert.Equal(t, "text-green-500", StyleFor(types.SectionScore).Color)

	for _, id := range append([]types.SectionID{types.SectionScore}, types.TextSections...) {
		assert.NotEqual(t, defaultStyle, StyleFor(id), "section %s", id)
	}
	assert.Equal(t, defaultStyle, StyleFor("ats_score"))
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, []string{"Docker", "Kubernetes"}, Paragraphs("Docker\n\nKubernetes"))
	assert.Empty(t, Paragraphs(""))
}

func TestParagraphHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**Cloud:** AWS", "<strong>Cloud:</strong> AWS"},
		{"plain text", "plain text"},
		{"a **b** c **d**", "a <strong>b</strong> c <strong>d</strong>"},
		{"x < y & z", "x &lt; y &amp; z"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, paragraphHTML(tt.input))
		})
	}
}

func TestHTML_SectionCard(t *testing.T) {
	rec := types.Recommendation{Section: &types.Section{
		ID:    types.SectionContentImprovements,
		Title: "Content Improvements",
		Body:  "**Quantify impact:** add metrics\n\nLead with outcomes",
	}}

	out := HTML(rec)

	assert.Contains(t, out, `data-section="content_improvements"`)
	assert.Contains(t, out, "<h3>Content Improvements</h3>")
	assert.Contains(t, out, "<p><strong>Quantify impact:</strong> add metrics</p>")
	assert.Contains(t, out, "<p>Lead with outcomes</p>")
}

func TestHTML_EscapesModelOutput(t *testing.T) {
	rec := types.Recommendation{Section: &types.Section{
		ID:    types.SectionMissingSkills,
		Title: "Missing Skills",
		Body:  `<script>alert("x")</script> Go`,
	}}

	out := HTML(rec)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "Go")
}

func TestHTMLDocument(t *testing.T) {
	recs := []types.Recommendation{
		{Score: &types.ScoreRecord{Current: 60, Target: 85}},
		{Section: &types.Section{ID: types.SectionMissingSkills, Title: "Missing Skills", Body: "Go"}},
	}

	out := HTMLDocument(recs)
	assert.Equal(t, 2, strings.Count(out, "<article"))
	assert.Contains(t, out, "Current Score: 60/100 | Target Score: 85/100")
}

func TestText(t *testing.T) {
	recs := []types.Recommendation{
		{Score: &types.ScoreRecord{Current: 60, Target: 85}},
		{Section: &types.Section{ID: types.SectionMissingSkills, Title: "Missing Skills", Body: "**Cloud:** AWS\n\nDocker"}},
	}

	expected := "▲ Resume Score\n  Current Score: 60/100 | Target Score: 85/100\n\n! Missing Skills\n  Cloud: AWS\n  Docker\n"
	assert.Equal(t, expected, Text(recs))
	assert.Equal(t, "", Text(nil))
}
