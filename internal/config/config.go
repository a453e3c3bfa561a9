// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by the parse command.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatHTML = "html"
)

// DefaultPort is the HTTP port used by serve.
const DefaultPort = 8080

// Config represents configuration loaded from a JSON or YAML file. All
// fields are optional; missing values fall back to flags, environment
// variables or defaults.
type Config struct {
	// Inputs
	Resume  string `json:"resume,omitempty" yaml:"resume,omitempty"`     // Path to resume (.pdf, .docx, .txt)
	JobURL  string `json:"job_url,omitempty" yaml:"job_url,omitempty"`   // URL of the job posting
	JobFile string `json:"job_file,omitempty" yaml:"job_file,omitempty"` // Saved job posting text

	// Model
	APIKey      string   `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Model       string   `json:"model,omitempty" yaml:"model,omitempty"`             // Overrides the standard tier model
	Temperature *float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"` // nil keeps the client default
	DailyLimit  int      `json:"daily_limit,omitempty" yaml:"daily_limit,omitempty"` // Model calls per day

	// Behavior
	UseBrowser  bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml
// are read as YAML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables: GEMINI_API_KEY,
// DATABASE_URL, LLM_DAILY_LIMIT and PORT.
func FromEnv() (Config, error) {
	cfg := Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	var err error
	if cfg.DailyLimit, err = intEnv("LLM_DAILY_LIMIT"); err != nil {
		return cfg, err
	}
	if cfg.Port, err = intEnv("PORT"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func intEnv(name string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return v, nil
}

// Validate checks value ranges and mutually exclusive fields. Required
// fields are checked by each command after merging.
func (c *Config) Validate() error {
	if c.JobURL != "" && c.JobFile != "" {
		return fmt.Errorf("config error: 'job_url' and 'job_file' are mutually exclusive")
	}

	if c.DailyLimit < 0 {
		return fmt.Errorf("config error: 'daily_limit' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}

	switch c.Format {
	case "", FormatJSON, FormatText, FormatHTML:
	default:
		return fmt.Errorf("config error: unknown format %q (want json, text or html)", c.Format)
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.JobFile != "" {
		if _, err := os.Stat(c.JobFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.JobFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.JobURL == "" && result.JobFile == "" {
		result.JobURL = defaults.JobURL
		result.JobFile = defaults.JobFile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Temperature == nil {
		result.Temperature = defaults.Temperature
	}
	if result.DailyLimit == 0 {
		result.DailyLimit = defaults.DailyLimit
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so flags always win.

	return result
}
