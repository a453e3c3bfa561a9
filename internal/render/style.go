// Package render presents extracted recommendations: display styles per
// section, sanitized HTML cards and plain text.
package render

import "github.com/jonathan/resume-recommender/internal/types"

// Style is the presentation attached to a recommendation card. It is looked
// up by section ID and never stored on the recommendation itself.
type Style struct {
	Kind   string `json:"kind"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
	Border string `json:"border"`
}

var styles = map[types.SectionID]Style{
	types.SectionScore:                 {Kind: "score", Icon: "trending-up", Color: "text-green-500", Border: "border-beige-500"},
	types.SectionMissingSkills:         {Kind: "missing", Icon: "alert-circle", Color: "text-red-500", Border: "border-red-500"},
	types.SectionExperienceGaps:        {Kind: "experience", Icon: "target", Color: "text-orange-500", Border: "border-orange-500"},
	types.SectionContentImprovements:   {Kind: "improvement", Icon: "check-circle", Color: "text-blue-500", Border: "border-green-500"},
	types.SectionSpecificExamples:      {Kind: "examples", Icon: "lightbulb", Color: "text-purple-500", Border: "border-purple-500"},
	types.SectionFormattingSuggestions: {Kind: "formatting", Icon: "zap", Color: "text-yellow-500", Border: "border-blue-500"},
}

var defaultStyle = Style{Kind: "note", Icon: "info", Color: "text-gray-300", Border: "border-gray-700"}

// StyleFor returns the card style for a section. Unknown IDs get a neutral style.
func StyleFor(id types.SectionID) Style {
	if s, ok := styles[id]; ok {
		return s
	}
	return defaultStyle
}

// Glyph is a single-character marker for terminal output.
func Glyph(id types.SectionID) string {
	switch id {
	case types.SectionScore:
		return "▲"
	case types.SectionMissingSkills:
		return "!"
	case types.SectionExperienceGaps:
		return "◎"
	case types.SectionContentImprovements:
		return "✓"
	case types.SectionSpecificExamples:
		return "★"
	case types.SectionFormattingSuggestions:
		return "¶"
	default:
		return "•"
	}
}
