// Package errors provides structured error handling for reference-table
// loading and lookup failures.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeLoadFailed marks a reference table that is missing, unreadable or
	// malformed. It is fatal before any individual is generated.
	CodeLoadFailed Code = "LOAD_FAILED"

	// CodeLookupMiss marks a query with no matching decade or year row.
	CodeLookupMiss Code = "LOOKUP_MISS"
)
