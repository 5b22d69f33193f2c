// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the business failure taxonomy of the fulfillment workflow:
//   - ObjectNotFoundError: an entity is absent from storage
//   - InvalidStateError: an operation is not legal from the current status
//   - ForbiddenError: a role or ownership violation
//   - ConflictError: the operation collides with committed state
//   - UnprocessableError: a required collection or field is missing or empty
//   - UnavailableError: no eligible resource exists to serve the operation
//   - ValueIsInvalidError / ValueIsRequiredError: constructor validation failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidState)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, enabling errors.Is classification
//
// Business-rule violations are detected locally and returned as these typed
// failures; the application never retries a failed business check.
package errs
