package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-recommender/internal/config"
	"github.com/jonathan/resume-recommender/internal/llm"
)

// resolveConfig layers settings: flags first, then the --config file, then
// environment variables.
func resolveConfig(flags config.Config, configPath string) (config.Config, error) {
	merged := flags
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		merged = merged.MergeWithDefaults(*fileCfg)
		merged.UseBrowser = merged.UseBrowser || fileCfg.UseBrowser
		merged.Verbose = merged.Verbose || fileCfg.Verbose
	}

	envCfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	merged = merged.MergeWithDefaults(envCfg)

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// llmConfig applies the model and temperature overrides to the defaults.
func llmConfig(cfg config.Config) *llm.Config {
	c := llm.DefaultConfig()
	if cfg.Model != "" {
		c = c.WithModel(llm.TierStandard, cfg.Model)
	}
	if cfg.Temperature != nil {
		c = c.WithTemperature(*cfg.Temperature)
	}
	return c
}

// newModelClient creates a Gemini client bounded by the daily call limit.
func newModelClient(ctx context.Context, cfg config.Config) (*llm.LimitedClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	client, err := llm.NewClient(ctx, llmConfig(cfg), cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return llm.NewLimitedClient(client, llm.NewDailyLimiter(cfg.DailyLimit)), nil
}
