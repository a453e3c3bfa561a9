package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<!DOCTYPE html>
<html>
<head><title>Backend Engineer - Acme</title></head>
<body>
<nav>Nav</nav>
<main>
<h1>Backend Engineer</h1>
<ul><li>Go</li><li>PostgreSQL</li></ul>
</main>
<footer>Footer</footer>
</body>
</html>`

func TestFetchJobPosting_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	posting, err := FetchJobPosting(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer\nGo\nPostgreSQL", posting.Text)
	assert.Equal(t, "Backend Engineer - Acme", posting.Title)
	assert.Equal(t, server.URL, posting.URL)
	assert.Len(t, posting.Hash, 64)
	assert.False(t, posting.UsedBrowser)
	assert.False(t, posting.FetchedAt.IsZero())
}

func TestFetchJobPosting_InvalidURL(t *testing.T) {
	tests := []string{"", "not-a-url", "example.com", "http://"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := FetchJobPosting(context.Background(), input, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrHTTPRequestFailed)
		})
	}
}

func TestFetchJobPosting_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><script>render()</script></body></html>"))
	}))
	defer server.Close()

	_, err := FetchJobPosting(context.Background(), server.URL, nil)
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}

func TestFetchJobPosting_BrowserFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><main>Loading...</main></body></html>"))
	}))
	defer server.Close()

	long := strings.Repeat("Design resilient payment APIs. ", 30)
	opts := &JobOptions{
		UseBrowser: true,
		render: func(_ context.Context, _ string, _ time.Duration, _ bool) (string, error) {
			return "<html><head><title>Rendered</title></head><body><main>" + long + "</main></body></html>", nil
		},
	}

	posting, err := FetchJobPosting(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.True(t, posting.UsedBrowser)
	assert.Equal(t, "Rendered", posting.Title)
	assert.Contains(t, posting.Text, "payment APIs")
}

func TestFetchJobPosting_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><main>Short posting</main></body></html>"))
	}))
	defer server.Close()

	opts := &JobOptions{
		UseBrowser: true,
		render: func(_ context.Context, _ string, _ time.Duration, _ bool) (string, error) {
			return "", errors.New("chrome not installed")
		},
	}

	posting, err := FetchJobPosting(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.Equal(t, "Short posting", posting.Text)
	assert.False(t, posting.UsedBrowser)
}
