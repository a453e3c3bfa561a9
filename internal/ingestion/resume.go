package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxResumeBytes is the largest resume upload accepted.
const MaxResumeBytes = 16 << 20

// DefaultResumeExtensions lists the formats ExtractResumeText understands.
var DefaultResumeExtensions = []string{".pdf", ".docx", ".txt"}

// ErrEmptyResume is returned when a resume yields no text.
var ErrEmptyResume = errors.New("resume contains no extractable text")

// UnsupportedFormatError is returned for a resume file type that cannot be read.
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported resume format for %q: missing file extension", e.Filename)
	}
	return fmt.Sprintf("unsupported resume format %q for %q", e.Extension, e.Filename)
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
)

// AllowedResumeFile reports whether filename has one of the allowed
// extensions, compared case-insensitively. A nil list means
// DefaultResumeExtensions.
func AllowedResumeFile(filename string, allowed []string) bool {
	if allowed == nil {
		allowed = DefaultResumeExtensions
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if strings.ToLower(a) == ext {
			return true
		}
	}
	return false
}

// ExtractResumeText returns the cleaned text of a resume, choosing the
// reader from the file extension.
func ExtractResumeText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDFText(data)
	case ".docx":
		text, err = extractDocxText(data)
	case ".txt":
		text = string(data)
	default:
		return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrEmptyResume
	}
	return text, nil
}

// ReadResumeFile loads a resume from disk and extracts its text.
func ReadResumeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("resume file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}
	if len(data) > MaxResumeBytes {
		return "", fmt.Errorf("resume file %s exceeds %d bytes", path, MaxResumeBytes)
	}
	return ExtractResumeText(filepath.Base(path), data)
}

// extractPDFText reads every page's plain text. The pdf package panics on
// some malformed files, so panics are reported as errors.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText flattens WordprocessingML into lines of text.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
