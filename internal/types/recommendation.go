// Package types provides type definitions for structured data used throughout the resume-recommender system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// SectionID identifies one category of feedback in an analysis response.
type SectionID string

// Section identifiers in template order. SectionScore is the fixed-format
// current/target pair; the rest are free-text sections.
const (
	SectionScore                 SectionID = "score"
	SectionMissingSkills         SectionID = "missing_skills"
	SectionExperienceGaps        SectionID = "experience_gaps"
	SectionContentImprovements   SectionID = "content_improvements"
	SectionSpecificExamples      SectionID = "specific_examples"
	SectionFormattingSuggestions SectionID = "formatting_suggestions"
)

// TextSections lists the free-text sections in the order the template emits them.
var TextSections = []SectionID{
	SectionMissingSkills,
	SectionExperienceGaps,
	SectionContentImprovements,
	SectionSpecificExamples,
	SectionFormattingSuggestions,
}

var sectionTitles = map[SectionID]string{
	SectionScore:                 "Resume Score",
	SectionMissingSkills:         "Missing Skills",
	SectionExperienceGaps:        "Experience Gaps",
	SectionContentImprovements:   "Content Improvements",
	SectionSpecificExamples:      "Specific Examples",
	SectionFormattingSuggestions: "Formatting Suggestions",
}

var sectionNumbers = map[SectionID]int{
	SectionMissingSkills:         3,
	SectionExperienceGaps:        4,
	SectionContentImprovements:   5,
	SectionSpecificExamples:      6,
	SectionFormattingSuggestions: 7,
}

// Title returns the display label for the section.
func (id SectionID) Title() string {
	return sectionTitles[id]
}

// Number returns the numeral the template uses for the section header,
// or 0 for the score record and unknown identifiers.
func (id SectionID) Number() int {
	return sectionNumbers[id]
}

// Marker returns the literal numbered header, e.g. "3. Missing Skills:".
func (id SectionID) Marker() string {
	n := id.Number()
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d. %s:", n, id.Title())
}

// Valid reports whether id is a known section identifier.
func (id SectionID) Valid() bool {
	_, ok := sectionTitles[id]
	return ok
}

// ScoreRecord holds the current and target match scores. Both are in [0,100];
// target is not required to be higher than current.
type ScoreRecord struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

// Summary renders the score pair as a single display line.
func (s ScoreRecord) Summary() string {
	return fmt.Sprintf("Current Score: %d/100 | Target Score: %d/100", s.Current, s.Target)
}

// Section is one recognized, non-empty free-text category.
type Section struct {
	ID      SectionID `json:"id"`
	Title   string    `json:"title"`
	RawBody string    `json:"raw_body"`
	Body    string    `json:"body"`
}

// Recommendation is either a score summary or a text section. Exactly one
// of Score and Section is set.
type Recommendation struct {
	Score   *ScoreRecord
	Section *Section
}

// Recommendation kinds as they appear on the wire.
const (
	KindScore   = "score"
	KindSection = "section"
)

// ID returns the section identifier of the recommendation.
func (r Recommendation) ID() SectionID {
	if r.Section != nil {
		return r.Section.ID
	}
	return SectionScore
}

// Kind returns KindScore or KindSection.
func (r Recommendation) Kind() string {
	if r.Section != nil {
		return KindSection
	}
	return KindScore
}

// Title returns the display label.
func (r Recommendation) Title() string {
	if r.Section != nil {
		return r.Section.Title
	}
	return SectionScore.Title()
}

// Content returns the display text: the normalized body for sections and
// the summary line for scores.
func (r Recommendation) Content() string {
	switch {
	case r.Section != nil:
		return r.Section.Body
	case r.Score != nil:
		return r.Score.Summary()
	default:
		return ""
	}
}

// recommendationJSON is the flat wire form consumed by the presentation layer.
type recommendationJSON struct {
	ID      SectionID `json:"id"`
	Kind    string    `json:"kind"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Current *int      `json:"current,omitempty"`
	Target  *int      `json:"target,omitempty"`
	RawBody string    `json:"raw_body,omitempty"`
}

// MarshalJSON encodes the recommendation in its flat wire form.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	out := recommendationJSON{
		ID:      r.ID(),
		Kind:    r.Kind(),
		Title:   r.Title(),
		Content: r.Content(),
	}
	if r.Score != nil {
		current, target := r.Score.Current, r.Score.Target
		out.Current = &current
		out.Target = &target
	}
	if r.Section != nil {
		out.RawBody = r.Section.RawBody
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the flat wire form.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var in recommendationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch in.Kind {
	case KindScore:
		if in.Current == nil || in.Target == nil {
			return fmt.Errorf("score recommendation requires current and target")
		}
		*r = Recommendation{Score: &ScoreRecord{Current: *in.Current, Target: *in.Target}}
	case KindSection:
		if !in.ID.Valid() || in.ID == SectionScore {
			return fmt.Errorf("unknown section id %q", in.ID)
		}
		*r = Recommendation{Section: &Section{
			ID:      in.ID,
			Title:   in.Title,
			RawBody: in.RawBody,
			Body:    in.Content,
		}}
	default:
		return fmt.Errorf("unknown recommendation kind %q", in.Kind)
	}
	return nil
}

// Extraction is the structured result of parsing one analysis response.
type Extraction struct {
	Score    *ScoreRecord `json:"score,omitempty"`
	Sections []Section    `json:"sections"`
}

// Empty reports whether nothing structured was found.
func (e Extraction) Empty() bool {
	return e.Score == nil && len(e.Sections) == 0
}

// Recommendations flattens the extraction: score first, then sections in
// template order.
func (e Extraction) Recommendations() []Recommendation {
	recs := make([]Recommendation, 0, len(e.Sections)+1)
	if e.Score != nil {
		score := *e.Score
		recs = append(recs, Recommendation{Score: &score})
	}
	for i := range e.Sections {
		section := e.Sections[i]
		recs = append(recs, Recommendation{Section: &section})
	}
	return recs
}
