// Package errs provides standardized error types for the dispatch core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type carrying error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() returning the sentinel,
//     so callers classify with errors.Is
//
// Domain-specific sentinels (invalid transitions, batching preconditions,
// stock shortages) live next to the code that raises them; this package
// only covers the generic taxonomy shared by every layer.
package errs
