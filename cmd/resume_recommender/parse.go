package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-recommender/internal/config"
	"github.com/jonathan/resume-recommender/internal/observability"
	"github.com/jonathan/resume-recommender/internal/parsing"
	"github.com/jonathan/resume-recommender/internal/render"
	"github.com/jonathan/resume-recommender/internal/schemas"
	"github.com/jonathan/resume-recommender/internal/types"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract structured recommendations from a saved analysis response",
	Long:  "Parse a saved LLM analysis response into score and section recommendations. Runs offline; no API key is needed.",
	RunE:  runParse,
}

var (
	parseInputFile  string
	parseOutputFile string
	parseFormat     string
	parseVerbose    bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to the analysis response, or - for stdin")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Output file (default stdout)")
	parseCmd.Flags().StringVar(&parseFormat, "format", config.FormatJSON, "Output format: json, text or html")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print boxed recommendations to stderr")

	_ = parseCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	raw, err := readInput(cmd, parseInputFile)
	if err != nil {
		return err
	}

	recs := parsing.ParseRecommendations(string(raw))
	if parseVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRecommendations(recs)
	}

	out, err := formatRecommendations(recs, parseFormat)
	if err != nil {
		return err
	}
	return writeOutput(cmd, parseOutputFile, out)
}

// formatRecommendations renders recs. JSON output is checked against the
// recommendations schema before it is returned.
func formatRecommendations(recs []types.Recommendation, format string) ([]byte, error) {
	switch format {
	case "", config.FormatJSON:
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal recommendations: %w", err)
		}
		if err := schemas.ValidateRecommendations(data); err != nil {
			return nil, fmt.Errorf("recommendations failed schema validation: %w", err)
		}
		return append(data, '\n'), nil
	case config.FormatText:
		if len(recs) == 0 {
			return []byte(observability.NoRecommendationsMessage + "\n"), nil
		}
		return []byte(render.Text(recs) + "\n"), nil
	case config.FormatHTML:
		return []byte(render.HTMLDocument(recs) + "\n"), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json, text or html)", format)
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
