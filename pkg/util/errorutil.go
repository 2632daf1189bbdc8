package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
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

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns a copy of the error carrying an extra detail entry.
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	clone := *e
	clone.Details = details
	return &clone
}

// Error codes shared by services and the HTTP boundary.
const (
	CodeValidation         = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeInternal           = "INTERNAL_ERROR"
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeDuplicateName      = "DUPLICATE_NAME"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAlreadyBooked      = "ALREADY_BOOKED"
	CodeInvalidCount       = "INVALID_COUNT"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeNotManagementUser  = "NOT_MANAGEMENT_USER"
)

// Sentinels for errors.Is checks; match on Code only.
var (
	ErrDuplicateUsername  = NewDomainError(CodeDuplicateUsername, "Username already exists.", http.StatusConflict, nil)
	ErrDuplicateName      = NewDomainError(CodeDuplicateName, "A hospital with that name already exists.", http.StatusConflict, nil)
	ErrInvalidCredentials = NewDomainError(CodeInvalidCredentials, "Invalid username or password", http.StatusUnauthorized, nil)
	ErrNotFound           = NewDomainError(CodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrAlreadyBooked      = NewDomainError(CodeAlreadyBooked, "Bed is not available.", http.StatusConflict, nil)
	ErrUnauthorized       = NewDomainError(CodeUnauthorized, "login required", http.StatusUnauthorized, nil)
	ErrForbidden          = NewDomainError(CodeForbidden, "management access required", http.StatusForbidden, nil)
	ErrInvalidCount       = NewDomainError(CodeInvalidCount, "number of beds must be a positive integer", http.StatusBadRequest, nil)
	ErrUserNotFound       = NewDomainError(CodeUserNotFound, "user not found", http.StatusNotFound, nil)
	ErrNotManagementUser  = NewDomainError(CodeNotManagementUser, "user is not a management user", http.StatusForbidden, nil)
	ErrValidation         = NewDomainError(CodeValidation, "validation failed", http.StatusBadRequest, nil)
)

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}
