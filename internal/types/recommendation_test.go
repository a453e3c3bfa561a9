package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionID_Metadata(t *testing.T) {
	tests := []struct {
		id     SectionID
		title  string
		number int
		marker string
	}{
		{SectionScore, "Resume Score", 0, ""},
		{SectionMissingSkills, "Missing Skills", 3, "3. Missing Skills:"},
		{SectionExperienceGaps, "Experience Gaps", 4, "4. Experience Gaps:"},
		{SectionContentImprovements, "Content Improvements", 5, "5. Content Improvements:"},
		{SectionSpecificExamples, "Specific Examples", 6, "6. Specific Examples:"},
		{SectionFormattingSuggestions, "Formatting Suggestions", 7, "7. Formatting Suggestions:"},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.True(t, tt.id.Valid())
			assert.Equal(t, tt.title, tt.id.Title())
			assert.Equal(t, tt.number, tt.id.Number())
			assert.Equal(t, tt.marker, tt.id.Marker())
		})
	}

	assert.False(t, SectionID("ats_score").Valid())
}

func TestScoreRecord_Summary(t *testing.T) {
	assert.Equal(t, "Current Score: 62/100 | Target Score: 88/100", ScoreRecord{Current: 62, Target: 88}.Summary())
}

func TestRecommendation_Accessors(t *testing.T) {
	score := Recommendation{Score: &ScoreRecord{Current: 40, Target: 75}}
	assert.Equal(t, SectionScore, score.ID())
	assert.Equal(t, KindScore, score.Kind())
	assert.Equal(t, "Resume Score", score.Title())
	assert.Equal(t, "Current Score: 40/100 | Target Score: 75/100", score.Content())

	section := Recommendation{Section: &Section{
		ID:      SectionMissingSkills,
		Title:   "Missing Skills",
		RawBody: "* Docker",
		Body:    "Docker",
	}}
	assert.Equal(t, SectionMissingSkills, section.ID())
	assert.Equal(t, KindSection, section.Kind())
	assert.Equal(t, "Missing Skills", section.Title())
	assert.Equal(t, "Docker", section.Content())
}

func TestRecommendation_JSONWireForm(t *testing.T) {
	recs := []Recommendation{
		{Score: &ScoreRecord{Current: 0, Target: 90}},
		{Section: &Section{ID: SectionExperienceGaps, Title: "Experience Gaps", RawBody: "* On-call", Body: "On-call"}},
	}

	data, err := json.Marshal(recs)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"score"`)
	assert.Contains(t, string(data), `"current":0`)
	assert.Contains(t, string(data), `"target":90`)
	assert.Contains(t, string(data), `"id":"experience_gaps"`)
	assert.Contains(t, string(data), `"content":"On-call"`)

	var decoded []Recommendation
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, recs, decoded)
}

func TestRecommendation_UnmarshalRejectsUnknown(t *testing.T) {
	var rec Recommendation
	assert.Error(t, json.Unmarshal([]byte(`{"id":"score","kind":"score","current":10}`), &rec))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"ats","kind":"section"}`), &rec))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"score","kind":"banner"}`), &rec))
}

func TestExtraction_Recommendations(t *testing.T) {
	extraction := Extraction{
		Score: &ScoreRecord{Current: 50, Target: 70},
		Sections: []Section{
			{ID: SectionMissingSkills, Title: "Missing Skills", Body: "Go"},
			{ID: SectionFormattingSuggestions, Title: "Formatting Suggestions", Body: "One page"},
		},
	}

	recs := extraction.Recommendations()
	require.Len(t, recs, 3)
	assert.Equal(t, SectionScore, recs[0].ID())
	assert.Equal(t, SectionMissingSkills, recs[1].ID())
	assert.Equal(t, SectionFormattingSuggestions, recs[2].ID())
	assert.False(t, extraction.Empty())

	assert.True(t, Extraction{}.Empty())
	assert.Empty(t, Extraction{}.Recommendations())
}
