package insight

import (
	"errors"

	"github.com/alexanderramin/nutrimind/internal/analyzer"
)

var (
	// ErrDataUnavailable means no snapshot could be collected. Callers retry later.
	ErrDataUnavailable = errors.New("insight data unavailable")

	// ErrUnknownQuestion means the id is not in the question catalog.
	ErrUnknownQuestion = analyzer.ErrUnknownQuestion
)

// FallbackReason explains why a response did not come from the model.
type FallbackReason string

const (
	ReasonNone            FallbackReason = ""
	ReasonFeatureDisabled FallbackReason = "feature_disabled"
	ReasonModelNotReady   FallbackReason = "model_not_ready"
	ReasonInFlight        FallbackReason = "generation_in_flight"
	ReasonModelError      FallbackReason = "model_error"
	ReasonEmptyOutput     FallbackReason = "empty_output"
)
