package render

import (
	"html"
	"strings"

	"github.com/jonathan/resume-recommender/internal/types"
	"github.com/microcosm-cc/bluemonday"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("article", "h3", "p", "strong", "span")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("article", "span", "h3", "p")
	p.AllowAttrs("data-section").Matching(bluemonday.SpaceSeparatedTokens).OnElements("article")
	return p
}

// Paragraphs splits normalized content into its blank-line separated paragraphs.
func Paragraphs(content string) []string {
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// paragraphHTML escapes a paragraph and bolds the "**"-delimited segments.
// Odd-numbered segments after splitting on "**" are emphasized.
func paragraphHTML(paragraph string) string {
	var sb strings.Builder
	for i, part := range strings.Split(paragraph, "**") {
		if part == "" {
			continue
		}
		if i%2 == 1 {
			sb.WriteString("<strong>")
			sb.WriteString(html.EscapeString(part))
			sb.WriteString("</strong>")
		} else {
			sb.WriteString(html.EscapeString(part))
		}
	}
	return sb.String()
}

// HTML renders one recommendation as a sanitized card fragment.
func HTML(rec types.Recommendation) string {
	style := StyleFor(rec.ID())

	var sb strings.Builder
	sb.WriteString(`<article class="card border-l-4 ` + style.Border + `" data-section="` + string(rec.ID()) + `">`)
	sb.WriteString(`<span class="icon ` + style.Color + `">` + style.Icon + `</span>`)
	sb.WriteString("<h3>" + html.EscapeString(rec.Title()) + "</h3>")
	for _, p := range Paragraphs(rec.Content()) {
		sb.WriteString("<p>" + paragraphHTML(p) + "</p>")
	}
	sb.WriteString("</article>")

	return policy.Sanitize(sb.String())
}

// HTMLDocument renders every recommendation, one card per line.
func HTMLDocument(recs []types.Recommendation) string {
	cards := make([]string, 0, len(recs))
	for _, rec := range recs {
		cards = append(cards, HTML(rec))
	}
	return strings.Join(cards, "\n")
}

// Text renders recommendations as plain text with emphasis markers removed.
func Text(recs []types.Recommendation) string {
	var sb strings.Builder
	for i, rec := range recs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(Glyph(rec.ID()) + " " + rec.Title() + "\n")
		for _, p := range Paragraphs(rec.Content()) {
			sb.WriteString("  " + strings.ReplaceAll(p, "**", "") + "\n")
		}
	}
	return sb.String()
}
