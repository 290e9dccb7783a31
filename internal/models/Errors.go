package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrWeatherUnavailable = errors.New("weather unavailable")
	ErrWindowEmpty        = errors.New("weather window empty")
	ErrMissingFeature     = errors.New("missing feature")
	ErrModelLoad          = errors.New("model load failed")
	ErrInference          = errors.New("inference failed")
)

// Failure kinds reported to clients and used as metric labels.
const (
	KindInvalidRequest     = "invalid_request"
	KindWeatherUnavailable = "weather_unavailable"
	KindWindowEmpty        = "window_empty"
	KindMissingFeature     = "missing_feature"
	KindModelLoad          = "model_load"
	KindInference          = "inference"
	KindInternal           = "internal"
)

// InvalidRequestError names the request field that failed validation.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid field: %s", e.Field)
	}
	return e.Reason
}

func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// MissingFeatureError lists schema features absent from the assembled inputs.
type MissingFeatureError struct {
	Names []string
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("missing feature(s): %s", strings.Join(e.Names, ", "))
}

func (e *MissingFeatureError) Is(target error) bool {
	return target == ErrMissingFeature
}

// ErrorKind maps an error chain onto its failure kind.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, ErrWeatherUnavailable):
		return KindWeatherUnavailable
	case errors.Is(err, ErrWindowEmpty):
		return KindWindowEmpty
	case errors.Is(err, ErrMissingFeature):
		return KindMissingFeature
	case errors.Is(err, ErrModelLoad):
		return KindModelLoad
	case errors.Is(err, ErrInference):
		return KindInference
	default:
		return KindInternal
	}
}
