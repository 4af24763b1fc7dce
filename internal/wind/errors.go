package wind

import (
	"errors"
	"fmt"
)

// FailureKind tags the closed set of ways an acquisition cycle can fail.
type FailureKind int

const (
	// FailureTimeout covers requests that exceeded the hard HTTP timeout.
	FailureTimeout FailureKind = iota + 1
	// FailureTransport covers network-level faults other than timeouts,
	// including fast-fails from an open circuit breaker.
	FailureTransport
	// FailureHTTPStatus covers responses with a non-200 status code.
	FailureHTTPStatus
	// FailureMalformedBody covers bodies that are not valid JSON at all.
	FailureMalformedBody
	// FailureSchemaMismatch covers valid JSON that does not carry the
	// provider's expected structure or value types.
	FailureSchemaMismatch
)

func (k FailureKind) String() string {
	switch k {
	case FailureTimeout:
		return "timeout"
	case FailureTransport:
		return "transport-failure"
	case FailureHTTPStatus:
		return "http-status"
	case FailureMalformedBody:
		return "malformed-body"
	case FailureSchemaMismatch:
		return "schema-mismatch"
	default:
		return "unknown"
	}
}

// AcquisitionError is the typed failure produced by one acquisition cycle.
// It carries no observation data; a failed cycle yields this and nothing
// else. StatusCode is set for FailureHTTPStatus, Provider and Field for
// FailureSchemaMismatch.
type AcquisitionError struct {
	Kind       FailureKind
	Provider   ProviderName
	StatusCode int
	Field      string
	cause      error
}

func (e *AcquisitionError) Error() string {
	switch e.Kind {
	case FailureTimeout:
		return fmt.Sprintf("request timed out: %v", e.cause)
	case FailureHTTPStatus:
		return fmt.Sprintf("unexpected http status %d", e.StatusCode)
	case FailureMalformedBody:
		return fmt.Sprintf("malformed response body: %v", e.cause)
	case FailureSchemaMismatch:
		return fmt.Sprintf("%s response schema mismatch at %q", e.Provider, e.Field)
	default:
		return fmt.Sprintf("transport failure: %v", e.cause)
	}
}

func (e *AcquisitionError) Unwrap() error { return e.cause }

func NewTimeoutError(cause error) *AcquisitionError {
	return &AcquisitionError{Kind: FailureTimeout, cause: cause}
}

func NewTransportError(cause error) *AcquisitionError {
	return &AcquisitionError{Kind: FailureTransport, cause: cause}
}

func NewHTTPStatusError(code int) *AcquisitionError {
	return &AcquisitionError{Kind: FailureHTTPStatus, StatusCode: code}
}

func NewMalformedBodyError(cause error) *AcquisitionError {
	return &AcquisitionError{Kind: FailureMalformedBody, cause: cause}
}

func NewSchemaMismatchError(provider ProviderName, field string) *AcquisitionError {
	return &AcquisitionError{Kind: FailureSchemaMismatch, Provider: provider, Field: field}
}

// KindOf extracts the failure kind from err, unwrapping as needed.
func KindOf(err error) (FailureKind, bool) {
	var ae *AcquisitionError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}

// IsFailure reports whether err carries the given failure kind.
func IsFailure(err error, kind FailureKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
