package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError and determines its HTTP status and wire code.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthentication
	KindAuthorization
	KindValidation
	KindBadRequest
	KindFileUpload
	KindNotFound
	KindConflict
)

// Code returns the machine-readable code sent to clients.
func (k Kind) Code() string {
	switch k {
	case KindAuthentication:
		return "AUTHENTICATION_ERROR"
	case KindAuthorization:
		return "AUTHORIZATION_ERROR"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindFileUpload:
		return "FILE_UPLOAD_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation, KindBadRequest, KindFileUpload:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AppError is an error meant to be reported to API clients. Message is safe
// to expose; Err (if any) is the underlying cause and stays server-side.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAuthenticationError(msg string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: msg}
}

func NewAuthorizationError(msg string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: msg}
}

func NewValidationError(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

func NewBadRequestError(msg string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: msg}
}

func NewFileUploadError(msg string) *AppError {
	return &AppError{Kind: KindFileUpload, Message: msg}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewConflictError(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

// NewInternalError wraps err; clients only ever see a generic message.
func NewInternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// AsAppError extracts an *AppError from err. Errors that are not AppErrors
// are reported as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
