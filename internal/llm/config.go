package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskNarrative narrates one precomputed insight data block.
	TaskNarrative TaskType = "narrative"
	// TaskWarmup loads the model into memory without producing text.
	TaskWarmup TaskType = "warmup"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	// KeepAlive is how long the server keeps the model loaded after a call.
	KeepAlive string
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2:1b",
		TimeoutMs:  10000,
		MaxRetries: 1,
		KeepAlive:  "10m",
		Tasks: map[TaskType]TaskConfig{
			TaskNarrative: {Temperature: 0.4, MaxTokens: 256, TimeoutMs: 15000},
			TaskWarmup:    {Temperature: 0, MaxTokens: 1, TimeoutMs: 60000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("NUTRIMIND_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("NUTRIMIND_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("NUTRIMIND_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("NUTRIMIND_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("NUTRIMIND_LLM_KEEP_ALIVE"); v != "" {
		cfg.KeepAlive = v
	}
	if v := os.Getenv("NUTRIMIND_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("NUTRIMIND_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("NUTRIMIND_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tc := cfg.Tasks[TaskNarrative]
			tc.MaxTokens = n
			cfg.Tasks[TaskNarrative] = tc
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskNarrative, "NUTRIMIND_LLM_NARRATIVE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskWarmup, "NUTRIMIND_LLM_WARMUP_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
