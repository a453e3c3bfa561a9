package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultSessionHours is how long a chat session token stays valid.
const DefaultSessionHours = 24

// SessionConfig holds the signing settings for chat session tokens.
type SessionConfig struct {
	Secret          string
	ExpirationHours int
}

// NewSessionConfig reads SESSION_SECRET (required) and
// SESSION_EXPIRATION_HOURS (default 24).
func NewSessionConfig() (*SessionConfig, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required but not set")
	}

	expirationHours := DefaultSessionHours
	if raw := os.Getenv("SESSION_EXPIRATION_HOURS"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_EXPIRATION_HOURS: %v", err)
		}
		expirationHours = v
	}

	cfg := &SessionConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SessionConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("SESSION_SECRET cannot be empty")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("SESSION_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
