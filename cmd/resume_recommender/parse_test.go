package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-recommender/internal/config"
	"github.com/jonathan/resume-recommender/internal/observability"
	"github.com/jonathan/resume-recommender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `**1. Current Score (0-100):** 70
**2. Target Score:** 90
**3. Missing Skills:**
* Kafka
**6. Specific Examples:**
* Payments service: mention the 40% latency cut`

// setParseFlags sets the parse globals and restores them after the test.
func setParseFlags(t *testing.T, in, out, format string, verbose bool) {
	t.Helper()
	oldIn, oldOut, oldFormat, oldVerbose := parseInputFile, parseOutputFile, parseFormat, parseVerbose
	parseInputFile, parseOutputFile, parseFormat, parseVerbose = in, out, format, verbose
	t.Cleanup(func() {
		parseInputFile, parseOutputFile, parseFormat, parseVerbose = oldIn, oldOut, oldFormat, oldVerbose
	})
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runParseCapture(t *testing.T, stdin string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	parseCmd.SetOut(&stdout)
	parseCmd.SetErr(&stderr)
	parseCmd.SetIn(strings.NewReader(stdin))
	t.Cleanup(func() {
		parseCmd.SetOut(nil)
		parseCmd.SetErr(nil)
		parseCmd.SetIn(nil)
	})
	err := runParse(parseCmd, nil)
	return stdout.String(), stderr.String(), err
}

func TestParseCommand_JSON(t *testing.T) {
	setParseFlags(t, writeTemp(t, "response.md", sampleResponse), "", config.FormatJSON, false)

	stdout, _, err := runParseCapture(t, "")
	require.NoError(t, err)

	var recs []types.Recommendation
	require.NoError(t, json.Unmarshal([]byte(stdout), &recs))
	require.Len(t, recs, 3)
	assert.Equal(t, types.SectionScore, recs[0].ID())
	assert.Equal(t, "Kafka", recs[1].Content())
	assert.Equal(t, "**Payments service:** mention the 40% latency cut", recs[2].Content())
}

func TestParseCommand_Stdin(t *testing.T) {
	setParseFlags(t, "-", "", config.FormatText, false)

	stdout, _, err := runParseCapture(t, sampleResponse)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Current Score: 70/100 | Target Score: 90/100")
	assert.Contains(t, stdout, "Payments service: mention the 40% latency cut")
	assert.NotContains(t, stdout, "**")
}

func TestParseCommand_OutputFileHTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "recs.html")
	setParseFlags(t, writeTemp(t, "response.md", sampleResponse), out, config.FormatHTML, false)

	_, stderr, err := runParseCapture(t, "")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `data-section="specific_examples"`)
	assert.Contains(t, string(data), "<strong>Payments service:</strong>")
}

func TestParseCommand_Unstructured(t *testing.T) {
	setParseFlags(t, writeTemp(t, "response.md", "Overall a strong resume."), "", config.FormatText, true)

	stdout, stderr, err := runParseCapture(t, "")
	require.NoError(t, err)
	assert.Equal(t, observability.NoRecommendationsMessage+"\n", stdout)
	assert.Contains(t, stderr, "RECOMMENDATIONS")
}

func TestParseCommand_Errors(t *testing.T) {
	setParseFlags(t, filepath.Join(t.TempDir(), "missing.md"), "", config.FormatJSON, false)
	_, _, err := runParseCapture(t, "")
	assert.ErrorContains(t, err, "failed to read input file")

	setParseFlags(t, writeTemp(t, "response.md", sampleResponse), "", "pdf", false)
	_, _, err = runParseCapture(t, "")
	assert.ErrorContains(t, err, "unknown format")
}

func TestFormatRecommendations_EmptyJSON(t *testing.T) {
	data, err := formatRecommendations([]types.Recommendation{}, config.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
