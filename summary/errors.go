package summary

import (
	"errors"
	"fmt"
)

// ErrInvalidScope is returned when a scope is neither "zone" nor "department".
var ErrInvalidScope = errors.New("invalid scope")

// ConfigurationError reports a missing setting required before any outbound
// call can be made.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s is not set", e.Key)
}

// ExternalServiceError is a failed call to the generative-text endpoint.
// StatusCode is zero when no HTTP response was received.
type ExternalServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("gemini request failed: %s", e.Message)
	}
	return fmt.Sprintf("gemini request failed with status %d: %s", e.StatusCode, e.Message)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
