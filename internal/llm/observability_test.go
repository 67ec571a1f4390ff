package llm

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver_WritesOneRecordPerCall(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.OnCallComplete(LLMCallEvent{Task: TaskNarrative, Model: "m", LatencyMs: 12, Success: true})
	obs.OnCallComplete(LLMCallEvent{Task: TaskNarrative, Model: "m", LatencyMs: 40, ErrorCode: "TIMEOUT"})

	out := buf.String()
	assert.Contains(t, out, "msg=llm_call task=narrative model=m latency_ms=12 success=true")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "error_code=TIMEOUT")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}
