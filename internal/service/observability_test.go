package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/nutrimind/internal/insight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, event UseCaseEvent) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewJSONHandler(&buf, nil)))
	obs.ObserveUseCase(context.Background(), event)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestLogUseCaseObserver_Levels(t *testing.T) {
	ok := logLine(t, UseCaseEvent{Name: "today", Duration: 12 * time.Millisecond, Success: true, Fields: map[string]any{"alerts": 2}})
	assert.Equal(t, "INFO", ok["level"])
	assert.Equal(t, "service_use_case", ok["msg"])
	assert.Equal(t, "today", ok["use_case"])
	assert.Equal(t, float64(12), ok["duration_ms"])
	assert.Equal(t, float64(2), ok["alerts"])

	rejected := logLine(t, UseCaseEvent{Name: "log-meal", Err: fmt.Errorf("%w: bad", ErrInvalidInput)})
	assert.Equal(t, "WARN", rejected["level"])
	assert.Equal(t, "invalid input: bad", rejected["error"])

	disabled := logLine(t, UseCaseEvent{Name: "digest", Err: ErrInsightsDisabled})
	assert.Equal(t, "WARN", disabled["level"])

	missing := logLine(t, UseCaseEvent{Name: "today", Err: fmt.Errorf("%w: no profile", insight.ErrDataUnavailable)})
	assert.Equal(t, "WARN", missing["level"])

	failed := logLine(t, UseCaseEvent{Name: "pull-model", Err: errors.New("connection refused")})
	assert.Equal(t, "ERROR", failed["level"])
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}
