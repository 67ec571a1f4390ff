package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_DisabledWithNarrativeBudget(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 256, cfg.Tasks[TaskNarrative].MaxTokens)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskNarrative))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NUTRIMIND_LLM_ENABLED", "true")
	t.Setenv("NUTRIMIND_LLM_MODEL", "qwen2.5:0.5b")
	t.Setenv("NUTRIMIND_LLM_TIMEOUT_MS", "9000")
	t.Setenv("NUTRIMIND_LLM_NARRATIVE_TIMEOUT_MS", "20000")
	t.Setenv("NUTRIMIND_LLM_MAX_TOKENS", "128")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "qwen2.5:0.5b", cfg.Model)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 20000, cfg.TaskTimeout(TaskNarrative))
	assert.Equal(t, 128, cfg.Tasks[TaskNarrative].MaxTokens)
	assert.Equal(t, 60000, cfg.TaskTimeout(TaskWarmup))
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("NUTRIMIND_LLM_NARRATIVE_TIMEOUT_MS", "not-a-number")
	t.Setenv("NUTRIMIND_LLM_MAX_TOKENS", "-5")
	t.Setenv("NUTRIMIND_LLM_MAX_RETRIES", "x")

	cfg := LoadConfig()

	assert.Equal(t, 15000, cfg.TaskTimeout(TaskNarrative))
	assert.Equal(t, 256, cfg.Tasks[TaskNarrative].MaxTokens)
	assert.Equal(t, 1, cfg.MaxRetries)
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tasks = map[TaskType]TaskConfig{}
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskNarrative))
}
