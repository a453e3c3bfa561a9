// Package parsing converts a free-form analysis response into typed recommendation records.
//
// The response is expected to follow a seven-part numbered template:
//
//	1. Current Score (0-100): <int>
//	2. Target Score: <int>
//	3. Missing Skills:
//	4. Experience Gaps:
//	5. Content Improvements:
//	6. Specific Examples:
//	7. Formatting Suggestions:
//
// Markers are consumed strictly left to right in template order and the first
// occurrence of each wins. Anything that does not match degrades to "absent";
// parsing never fails.
package parsing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/resume-recommender/internal/types"
)

// marker is one numbered header of the template.
type marker struct {
	id      types.SectionID
	number  int
	pattern *regexp.Regexp
}

const (
	currentScoreTitle = "Current Score (0-100)"
	targetScoreTitle  = "Target Score"
	maxScore          = 100
)

// templateMarkers holds the seven headers in template order.
var templateMarkers = buildTemplateMarkers()

// scoreValuePattern reads the number that follows a score header. A
// fractional part is captured so that it can be rejected.
var scoreValuePattern = regexp.MustCompile(`^[ \t]*\*{0,2}[ \t]*(\d+)(\.\d+)?`)

// trailerPattern matches a numbered header beyond the template, bold or
// plain (e.g. "**8. ATS Score:**" or "8. ATS Score:"). It must start a line
// and have a capitalised title. It only terminates the last section found.
var trailerPattern = regexp.MustCompile(`(?m)^[ \t]*(?:\*\*)?[ \t]*(?:[89]|[1-9][0-9]+)[ \t]*\.[ \t]*[A-Z][^\n:]*:`)

func buildTemplateMarkers() []marker {
	markers := []marker{
		newMarker(types.SectionScore, 1, currentScoreTitle),
		newMarker(types.SectionScore, 2, targetScoreTitle),
	}
	for _, id := range types.TextSections {
		markers = append(markers, newMarker(id, id.Number(), id.Title()))
	}
	return markers
}

// newMarker compiles a header pattern that requires the numeral, the period,
// the title words and the colon, tolerating blanks and up to two emphasis
// characters around each part.
func newMarker(id types.SectionID, number int, title string) marker {
	words := strings.Fields(title)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	expr := `\*{0,2}[ \t]*\b` + strconv.Itoa(number) + `[ \t]*\.[ \t]*` +
		strings.Join(words, `[ \t]+`) +
		`[ \t]*\*{0,2}[ \t]*:[ \t]*\*{0,2}`
	return marker{id: id, number: number, pattern: regexp.MustCompile(expr)}
}

// span is the byte range of a located header; start is -1 when absent.
type span struct {
	start, end int
}

func (s span) found() bool {
	return s.start >= 0
}

// ExtractSections scans raw for the template headers and returns the score
// pair (when both values parse) and every non-empty text section in template
// order. Free prose with no markers yields an empty Extraction.
func ExtractSections(raw string) types.Extraction {
	spans := locateMarkers(raw)
	bounds := markerBoundaries(raw)

	result := types.Extraction{
		Score:    extractScore(raw, spans[0], spans[1]),
		Sections: []types.Section{},
	}

	for i := 2; i < len(templateMarkers); i++ {
		sp := spans[i]
		if !sp.found() {
			continue
		}

		body := strings.TrimSpace(raw[sp.end:bodyEnd(raw, bounds, sp.end)])
		if isBlankBody(body) {
			continue
		}

		normalized := NormalizeContent(body)
		if isBlankBody(normalized) {
			continue
		}

		id := templateMarkers[i].id
		result.Sections = append(result.Sections, types.Section{
			ID:      id,
			Title:   id.Title(),
			RawBody: body,
			Body:    normalized,
		})
	}

	return result
}

// ParseRecommendations is ExtractSections flattened into display order.
func ParseRecommendations(raw string) []types.Recommendation {
	return ExtractSections(raw).Recommendations()
}

// locateMarkers finds each header from the cursor left by the previous one.
// A header that only occurs before the cursor is reported absent.
func locateMarkers(raw string) []span {
	spans := make([]span, len(templateMarkers))
	cursor := 0
	for i, m := range templateMarkers {
		loc := m.pattern.FindStringIndex(raw[cursor:])
		if loc == nil {
			spans[i] = span{start: -1, end: -1}
			continue
		}
		spans[i] = span{start: cursor + loc[0], end: cursor + loc[1]}
		cursor = spans[i].end
	}
	return spans
}

// markerBoundaries returns the sorted start offsets of every occurrence of
// every template header, found in sequence or not.
func markerBoundaries(raw string) []int {
	var bounds []int
	for _, m := range templateMarkers {
		for _, loc := range m.pattern.FindAllStringIndex(raw, -1) {
			bounds = append(bounds, loc[0])
		}
	}
	sort.Ints(bounds)
	return bounds
}

// bodyEnd returns where a body starting at from stops: the next header
// occurrence, else the next trailing numbered header, else end of input.
func bodyEnd(raw string, bounds []int, from int) int {
	idx := sort.SearchInts(bounds, from)
	if idx < len(bounds) {
		return bounds[idx]
	}
	if loc := trailerPattern.FindStringIndex(raw[from:]); loc != nil {
		return from + loc[0]
	}
	return len(raw)
}

// extractScore reads both score values. Either header missing, a missing or
// fractional value, or a value above 100 drops the pair.
func extractScore(raw string, current, target span) *types.ScoreRecord {
	if !current.found() || !target.found() {
		return nil
	}

	currentValue, ok := scoreValue(raw[current.end:])
	if !ok {
		return nil
	}
	targetValue, ok := scoreValue(raw[target.end:])
	if !ok {
		return nil
	}

	return &types.ScoreRecord{Current: currentValue, Target: targetValue}
}

func scoreValue(text string) (int, bool) {
	m := scoreValuePattern.FindStringSubmatch(text)
	if m == nil || m[2] != "" {
		return 0, false
	}
	value, err := strconv.Atoi(m[1])
	if err != nil || value < 0 || value > maxScore {
		return 0, false
	}
	return value, true
}

// isBlankBody reports a trimmed body with nothing but a lone marker character.
func isBlankBody(body string) bool {
	return body == "" || body == "*" || body == "•"
}
