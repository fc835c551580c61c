// Package errs provides standardized error types for the parcel tracking application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a numeric value falls outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - NotAuthenticatedError and TokenError: For missing, invalid or expired credentials
//   - ForbiddenError: For an authenticated caller that may not perform an action
//   - PreconditionFailedError: For an operation the current state does not permit
//   - ConflictError and ConcurrentModificationError: For unique-key and version collisions
//   - InternalError: For unexpected store or infrastructure failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf classifies any error into exactly one Kind so that the transport layer can map
// failures to status codes deterministically.
package errs
