// Package errs provides standardized error types for the parcel tracking application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Two families of errors live here:
//
//   - Local errors: ObjectNotFoundError, ValueIsInvalidError, ValueIsRequiredError.
//     These cover lookup misses and domain validation failures.
//
//   - Carrier boundary errors: CarrierUnavailableError, CarrierMalformedResponseError,
//     CarrierRejectedError. These classify failures of the external carrier
//     integration and drive retry decisions in the batch use cases.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Batch use cases never inspect vendor-specific strings; they classify per-item
// failures exclusively through errors.Is against the sentinels defined here.
package errs
