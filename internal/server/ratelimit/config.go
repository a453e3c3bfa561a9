package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one route.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // bucket capacity, Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	ExemptPaths     []string
	EndpointConfigs []EndpointConfig
}

// DefaultConfig is used when NewLimiter receives nil.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		ExemptPaths:     DefaultExemptPaths(),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables on top of DefaultConfig.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))

	// Model-backed endpoints can be tuned without a rebuild.
	analyzeLimit := getEnvInt("RATE_LIMIT_ANALYZE_PER_HOUR", 20)
	chatLimit := getEnvInt("RATE_LIMIT_CHAT_PER_HOUR", 120)
	for i := range cfg.EndpointConfigs {
		switch cfg.EndpointConfigs[i].Path {
		case "/api/analyze":
			cfg.EndpointConfigs[i].Limit = analyzeLimit
		case "/api/chat":
			cfg.EndpointConfigs[i].Limit = chatLimit
		}
	}
	return cfg
}

// DefaultExemptPaths are never limited.
func DefaultExemptPaths() []string {
	return []string{"/", "/api/health"}
}

// DefaultEndpointConfigs returns the per-route limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Each call spends the shared model quota
		{Path: "/api/analyze", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/api/chat", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},

		// Pure text work
		{Path: "/api/parse", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},

		{Path: "/api/analyses/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/analyses/", Method: "DELETE", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
