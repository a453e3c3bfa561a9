// Package observability provides formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-recommender/internal/render"
	"github.com/jonathan/resume-recommender/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// previewChars caps document previews
	previewChars = 300
)

// NoRecommendationsMessage is shown when a response has no template sections.
const NoRecommendationsMessage = "No structured recommendations found. The raw analysis response is shown instead."

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a box with a title. Long lines are wrapped, not cut.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(wrapped, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecommendations prints one box per recommendation, or the
// no-recommendations message when the list is empty.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		p.printBox("RECOMMENDATIONS", NoRecommendationsMessage)
		return
	}

	for _, rec := range recs {
		var paragraphs []string
		for _, para := range render.Paragraphs(rec.Content()) {
			paragraphs = append(paragraphs, strings.ReplaceAll(para, "**", ""))
		}
		title := fmt.Sprintf("%s %s", render.Glyph(rec.ID()), strings.ToUpper(rec.Title()))
		p.printBox(title, strings.Join(paragraphs, "\n\n"))
	}
}

// PrintDocument prints a short preview of an ingested document.
func (p *Printer) PrintDocument(title, text string) {
	preview := text
	if utf8.RuneCountInString(preview) > previewChars {
		preview = string([]rune(preview)[:previewChars]) + "..."
	}
	summary := fmt.Sprintf("Length: %d chars, %d lines\n\n%s", len(text), strings.Count(text, "\n")+1, preview)
	p.printBox(title, summary)
}

// PrintNote prints an advisory attached to an analysis.
func (p *Printer) PrintNote(note string) {
	if note == "" {
		return
	}
	p.printBox("NOTE", note)
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// wrap breaks a line on spaces so no piece exceeds width runes. Words longer
// than width are split.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	var lines []string
	var current []rune
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			lines = append(lines, string(current))
			current = w
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}
