// Package ingestion turns uploaded resumes and job posting URLs into the
// plain text that goes into the analysis prompt.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpacePattern = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankRunPattern   = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and spacing while keeping the line
// structure of the source. Runs of blank lines collapse to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\x00", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRunPattern.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner spacing. Bullet items keep their indentation so
// nested lists stay readable.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t\u00a0")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	content := innerSpacePattern.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) {
		if indent := len(line) - len(trimmed); indent > 0 {
			return strings.Repeat(" ", indent) + content
		}
	}
	return content
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}
