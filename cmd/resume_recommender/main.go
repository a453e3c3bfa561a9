// Package main provides the resume_recommender CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_recommender",
	Short: "Resume Recommender CLI and HTTP API Server",
	Long:  "Resume Recommender compares a resume against a job posting with an LLM and turns the review into structured, displayable recommendations.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
