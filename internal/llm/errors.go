package llm

import "errors"

var (
	// ErrOllamaUnavailable indicates the Ollama server is unreachable.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the model returned nothing usable.
	ErrInvalidOutput = errors.New("invalid llm output")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrModelNotReady indicates the model is not downloaded or not loaded.
	ErrModelNotReady = errors.New("model not ready")

	// ErrDownloadFailed indicates a model pull failed; the partial model was removed.
	ErrDownloadFailed = errors.New("model download failed")

	// ErrDownloadCancelled indicates a model pull was cancelled by the caller.
	ErrDownloadCancelled = errors.New("model download cancelled")

	// ErrUnsupported indicates the model cannot run in this environment.
	ErrUnsupported = errors.New("model unsupported")
)
