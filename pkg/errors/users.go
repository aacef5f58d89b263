// Package errors provides directory-specific error definitions for goUserDirectory.
// All endpoints reply with the unified error body {"error": "..."} plus an
// optional "message" field carrying a generic detail for 5xx responses.
package errors

import (
	"fmt"
	"net/http"
)

// Directory-specific error codes
const (
	// Validation errors (400 Bad Request)
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeQueryRequired    = "SEARCH_QUERY_REQUIRED"
	ErrCodeInvalidUserID    = "INVALID_USER_ID"
	ErrCodeInvalidJSONBody  = "INVALID_JSON_BODY"

	// State errors
	ErrCodeUserNotFound       = "USER_NOT_FOUND"       // 404
	ErrCodeUserAlreadyDeleted = "USER_ALREADY_DELETED" // 409
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"   // 405

	// Store errors (500 Internal Server Error)
	ErrCodeStoreError       = "STORE_ERROR"
	ErrCodeConnectionFailed = "STORE_CONNECTION_FAILED"
)

// DirectoryError represents a directory-specific error with HTTP status mapping
type DirectoryError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

// Error implements the error interface
func (e *DirectoryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GetHTTPStatus returns the HTTP status code for the error
func (e *DirectoryError) GetHTTPStatus() int {
	return e.HTTPStatus
}

// NewValidationError creates validation errors (400 Bad Request)
func NewValidationError(errCode, message string) *DirectoryError {
	return &DirectoryError{
		Code:       errCode,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates not found errors (404 Not Found)
func NewNotFoundError(message string) *DirectoryError {
	return &DirectoryError{
		Code:       ErrCodeUserNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError creates conflict errors (409 Conflict)
func NewConflictError(errCode, message string) *DirectoryError {
	return &DirectoryError{
		Code:       errCode,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewMethodNotAllowedError creates method errors (405 Method Not Allowed)
func NewMethodNotAllowedError(message string) *DirectoryError {
	return &DirectoryError{
		Code:       ErrCodeMethodNotAllowed,
		Message:    message,
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

// NewStoreError creates store errors (500 Internal Server Error).
// The message is user-facing, so callers must pass a generic one,
// never query text or driver details.
func NewStoreError(message string) *DirectoryError {
	return &DirectoryError{
		Code:       ErrCodeStoreError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// IsDirectoryError checks if error is a DirectoryError
func IsDirectoryError(err error) bool {
	_, ok := err.(*DirectoryError)
	return ok
}

// GetDirectoryError extracts DirectoryError from error
func GetDirectoryError(err error) (*DirectoryError, bool) {
	dirErr, ok := err.(*DirectoryError)
	return dirErr, ok
}
