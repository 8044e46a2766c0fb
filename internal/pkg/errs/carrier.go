package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for failures at the external-carrier boundary.
// The taxonomy matters to callers: an unavailable carrier is retryable,
// a malformed response or a rejection is not.
var (
	ErrCarrierUnavailable       = errors.New("carrier is unavailable")
	ErrCarrierMalformedResponse = errors.New("carrier returned a malformed response")
	ErrCarrierRejected          = errors.New("carrier rejected the request")
)

// CarrierUnavailableError indicates a transport or HTTP-level failure while
// talking to the carrier. The operation may be retried by the caller; the
// carrier adapter itself never retries.
type CarrierUnavailableError struct {
	Operation string
	Cause     error
}

// NewCarrierUnavailableError creates a CarrierUnavailableError for the given
// carrier operation (for example "track"), wrapping the transport failure.
func NewCarrierUnavailableError(operation string, cause error) *CarrierUnavailableError {
	return &CarrierUnavailableError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *CarrierUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrCarrierUnavailable, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrCarrierUnavailable, e.Operation)
}

func (e *CarrierUnavailableError) Unwrap() error {
	return ErrCarrierUnavailable
}

// CarrierMalformedResponseError indicates the carrier answered with a payload
// that violates its documented shape. Not retryable without investigation.
type CarrierMalformedResponseError struct {
	Operation string
	Cause     error
}

// NewCarrierMalformedResponseError creates a CarrierMalformedResponseError for
// the given carrier operation, wrapping the decoding failure when there is one.
func NewCarrierMalformedResponseError(operation string, cause error) *CarrierMalformedResponseError {
	return &CarrierMalformedResponseError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *CarrierMalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrCarrierMalformedResponse, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrCarrierMalformedResponse, e.Operation)
}

func (e *CarrierMalformedResponseError) Unwrap() error {
	return ErrCarrierMalformedResponse
}

// CarrierRejectedError indicates a vendor-side business rejection of a
// create-shipment request. Message carries the vendor's own wording for
// operator display; callers must not branch on it.
type CarrierRejectedError struct {
	Message string
}

// NewCarrierRejectedError creates a CarrierRejectedError carrying the vendor's
// rejection message.
func NewCarrierRejectedError(message string) *CarrierRejectedError {
	return &CarrierRejectedError{
		Message: message,
	}
}

func (e *CarrierRejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCarrierRejected, sanitize(e.Message))
}

func (e *CarrierRejectedError) Unwrap() error {
	return ErrCarrierRejected
}
