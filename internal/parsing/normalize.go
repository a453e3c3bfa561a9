package parsing

import (
	"strings"
	"unicode"
)

// isBulletOrSpace reports the runes stripped from the start of a bullet line.
func isBulletOrSpace(r rune) bool {
	return r == '•' || r == '*' || unicode.IsSpace(r)
}

// NormalizeContent cleans a raw section body for display.
//
// The canonical policy is the emphasis-label one: markup is stripped, then
// every "label: rest" line is rewritten as "**label:** rest" so the renderer
// can bold the label. Each non-empty line becomes its own paragraph, joined
// by a blank line. An empty result means the section should be dropped.
//
// The transform is idempotent.
func NormalizeContent(body string) string {
	text := strings.ReplaceAll(body, "\r\n", "\n")
	text = removeEmphasis(text)
	text = stripBullets(text)
	text = collapseBlankLines(text)
	text = trimLines(text)
	text = emphasizeLabels(text)
	return joinParagraphs(text)
}

// removeEmphasis deletes every asterisk, paired or not.
func removeEmphasis(text string) string {
	return strings.ReplaceAll(text, "*", "")
}

// stripBullets removes leading bullet glyphs (and the blanks around them)
// from each line. Any Unicode space counts as a blank, so NBSP or a stray \r
// cannot hide a bullet from the strip.
func stripBullets(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeftFunc(line, isBulletOrSpace)
		if trimmed != strings.TrimLeftFunc(line, unicode.IsSpace) {
			lines[i] = trimmed
		}
	}
	return strings.Join(lines, "\n")
}

// collapseBlankLines reduces any run of blank lines to a single one.
func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		if blank {
			line = ""
		}
		out = append(out, line)
		prevBlank = blank
	}
	return strings.Join(out, "\n")
}

// trimLines trims surrounding whitespace on every line independently.
func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// emphasizeLabels rewrites "label: rest" as "**label:** rest", splitting at
// the first colon. Lines without a colon, or starting with one, pass through.
func emphasizeLabels(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		lines[i] = "**" + line[:idx+1] + "**" + line[idx+1:]
	}
	return strings.Join(lines, "\n")
}

// joinParagraphs drops empty lines and separates the rest with a blank line.
func joinParagraphs(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n\n"))
}
