package insight

import (
	"os"
	"strconv"
	"time"

	"github.com/alexanderramin/nutrimind/internal/state"
)

// Config tunes the narrative generator.
type Config struct {
	// Enabled turns model narration on. When off every response is a fallback.
	Enabled     bool
	SnapshotTTL time.Duration
	ResponseTTL time.Duration
	MaxTokens   int
}

// DefaultConfig returns the generator defaults with narration off.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		SnapshotTTL: state.DefaultSnapshotTTL,
		ResponseTTL: state.DefaultResponseTTL,
		MaxTokens:   256,
	}
}

// LoadConfig reads generator settings from the environment.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("NUTRIMIND_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("NUTRIMIND_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("NUTRIMIND_SNAPSHOT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SnapshotTTL = d
		}
	}
	if v := os.Getenv("NUTRIMIND_RESPONSE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ResponseTTL = d
		}
	}
	return cfg
}
