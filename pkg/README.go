// Package pkg provides public libraries and utilities that can be imported by other projects.
//
// This package serves as the public API surface of goUserDirectory and contains:
//   - errors: Structured error handling for directory operations
//
// All code in this package maintains backward compatibility and follows semantic versioning.
//
// Example usage:
//
//	import "github.com/chybatronik/goUserDirectory/pkg/errors"
//
//	dirErr := errors.NewValidationError("INVALID_FIELD", "Field validation failed")
//	http.Error(w, dirErr.Error(), dirErr.GetHTTPStatus())
package pkg

// This file serves as the Go package documentation placeholder.
