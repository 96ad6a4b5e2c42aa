// Package api implements the JSON HTTP client the CLI uses to talk to the
// backend. All failures are normalized into *Error so callers can branch on
// the failure kind instead of inspecting transport details.
package api

import "fmt"

// Kind classifies an API failure.
type Kind string

const (
	// KindNetwork covers transport failures: connection refused, DNS,
	// timeouts, cancelled contexts.
	KindNetwork Kind = "network"
	// KindHTTP covers non-2xx responses.
	KindHTTP Kind = "http"
	// KindDecode covers 2xx responses whose body could not be decoded.
	KindDecode Kind = "decode"
	// KindValidation covers requests rejected before any I/O.
	KindValidation Kind = "validation"
)

// Error is the single error type returned by the client.
// Status is only set for KindHTTP.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: %s", e.Message)
}

// NewValidationError builds a KindValidation error.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}
