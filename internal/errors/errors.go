package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message.
// The message is the stable client-facing text; the wrapped error is for
// server-side logs only and never reaches a response body.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is lets a wrapped DomainError match its sentinel by code.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if errors.As(target, &domainErr) {
		return e.Code == domainErr.Code
	}
	return false
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an underlying error with domain error context.
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Auth errors. Wrong password and unknown username share one sentinel so
	// the response never reveals which part of the credential pair failed.
	ErrInvalidCredentials  = NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	ErrInvalidRefreshToken = NewDomainError("INVALID_REFRESH_TOKEN", "Invalid or expired refresh token")
	ErrUserInactive        = NewDomainError("USER_INACTIVE", "User not found or inactive")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Unauthorized")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Forbidden")

	// Registration conflicts
	ErrUsernameExists = NewDomainError("USERNAME_EXISTS", "Username already exists")
	ErrEmailExists    = NewDomainError("EMAIL_EXISTS", "Email already exists")

	// Catalog errors
	ErrOwnerNotFound      = NewDomainError("OWNER_NOT_FOUND", "Owner not found")
	ErrPropertyNotFound   = NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
	ErrImageNotFound      = NewDomainError("IMAGE_NOT_FOUND", "Image not found")
	ErrTraceNotFound      = NewDomainError("TRACE_NOT_FOUND", "Property trace not found")
	ErrOwnerHasProperties = NewDomainError("OWNER_HAS_PROPERTIES", "Cannot delete owner with active properties")

	// Validation and system errors
	ErrValidation = NewDomainError("VALIDATION_FAILED", "Validation failed")
	ErrInternal   = NewDomainError("INTERNAL_ERROR", "Operation failed")
)

// IsDomainError checks whether an error carries a domain error.
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error chain.
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes. Handler layer only.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request: validation plus business-rule conflicts, matching the
	// API contract where conflicts are reported as plain 400s with a message.
	case "VALIDATION_FAILED", "USERNAME_EXISTS", "EMAIL_EXISTS", "OWNER_HAS_PROPERTIES":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "INVALID_CREDENTIALS", "INVALID_REFRESH_TOKEN", "USER_INACTIVE", "UNAUTHORIZED":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN":
		return http.StatusForbidden

	// 404 Not Found
	case "OWNER_NOT_FOUND", "PROPERTY_NOT_FOUND", "IMAGE_NOT_FOUND", "TRACE_NOT_FOUND":
		return http.StatusNotFound

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage returns the stable client-facing message for an error. Raw
// error text from unexpected failures is replaced with the generic message.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return ErrInternal.Message
}
