// Package errs provides standardized error types for the fulfillment pipeline.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value is outside its permitted bounds
//   - ObjectNotFoundError: For when an object cannot be found (including
//     cross-tenant lookups, which must never reveal existence)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Business-rule failures that carry structured detail (state conflicts,
// capacity gates) are defined next to the domain logic that raises them;
// this package covers the generic validation and lookup failures only.
package errs
