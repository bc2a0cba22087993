package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for the client-side failure taxonomy. Transport covers network
// failures before any status is received; Precondition covers local checks
// that fail before a request is even issued.
const (
	CodeTransport    = "TRANSPORT"
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodePrecondition = "PRECONDITION"
	CodeRemote       = "REMOTE_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func Transport(message string, err error) *AppError {
	return &AppError{
		Code:    CodeTransport,
		Message: message,
		Status:  0,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func Precondition(message string) *AppError {
	return &AppError{
		Code:    CodePrecondition,
		Message: message,
		Status:  0,
		Err:     nil,
	}
}

// FromStatus maps a non-success HTTP status and the remote's message into the
// taxonomy.
func FromStatus(status int, message string) *AppError {
	if message == "" {
		message = http.StatusText(status)
	}
	switch {
	case status == http.StatusUnauthorized:
		return Unauthorized(message, nil)
	case status == http.StatusForbidden:
		return Forbidden(message, nil)
	case status == http.StatusNotFound:
		return &AppError{Code: CodeNotFound, Message: message, Status: status}
	case status >= 400 && status < 500:
		return &AppError{Code: CodeBadRequest, Message: message, Status: status}
	default:
		return &AppError{Code: CodeRemote, Message: message, Status: status}
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
