package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-recommender/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the job posting cannot be downloaded
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be pulled from the page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// JobOptions configures FetchJobPosting.
type JobOptions struct {
	Fetch          *fetch.Options
	UseBrowser     bool
	BrowserTimeout time.Duration
	Verbose        bool
	// render is swapped in tests to avoid launching Chrome.
	render func(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error)
}

// JobPosting is the extracted text of a job posting plus where it came from.
type JobPosting struct {
	URL         string
	Title       string
	Text        string
	Platform    fetch.Platform
	Hash        string
	UsedBrowser bool
	FetchedAt   time.Time
}

// FetchJobPosting downloads a job posting and extracts its main text using
// board-specific selectors. With UseBrowser set, short results are retried
// through a headless browser and the longer text wins.
func FetchJobPosting(ctx context.Context, urlStr string, opts *JobOptions) (*JobPosting, error) {
	if opts == nil {
		opts = &JobOptions{}
	}
	render := opts.render
	if render == nil {
		render = fetch.WithBrowser
	}

	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[VERBOSE] Job URL: %s (platform %s)", urlStr, platform)
	}

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	title := fetch.PageTitle(result.HTML)
	usedBrowser := false

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		if opts.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), rendering with browser", len(text), fetch.MinContentLength)
		}
		rendered, renderErr := render(ctx, urlStr, opts.BrowserTimeout, opts.Verbose)
		if renderErr != nil {
			log.Printf("[ingest] browser rendering failed for %s, keeping HTTP content: %v", urlStr, renderErr)
		} else if browserText, extractErr := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); extractErr == nil && len(browserText) > len(text) {
			text = browserText
			usedBrowser = true
			if t := fetch.PageTitle(rendered); t != "" {
				title = t
			}
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, urlStr)
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Job posting text: %d chars", len(cleaned))
	}

	return &JobPosting{
		URL:         urlStr,
		Title:       title,
		Text:        cleaned,
		Platform:    platform,
		Hash:        computeHash(cleaned),
		UsedBrowser: usedBrowser,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
