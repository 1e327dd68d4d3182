package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUpstream     = errors.New("upstream dependency failure")
	ErrInternal     = errors.New("internal server error")
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
	stack     string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

// Cause returns the underlying error, if any.
func (e *AppError) Cause() error {
	return e.Err
}

// Stack is the goroutine stack captured when the error was constructed.
func (e *AppError) Stack() string {
	return e.stack
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err, stack: string(debug.Stack())}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

// NewRequiredField reports a missing mandatory field, e.g. `"name" is required`.
func NewRequiredField(field string) *AppError {
	msg := fmt.Sprintf("%q is required", field)
	return NewAppError(ErrInvalidInput, msg, fmt.Sprintf("field %s is missing or empty", field), nil)
}

func NewInvalidInput(details string, err error) *AppError {
	msg := details
	if err != nil {
		msg = fmt.Sprintf("%s: %v", details, err)
	}
	return NewAppError(ErrInvalidInput, msg, details, err)
}

// NewUpstream wraps a failure of an external dependency. msg is exposed to clients as is.
func NewUpstream(msg, details string, err error) *AppError {
	return NewAppError(ErrUpstream, msg, details, err)
}

// NewInternal wraps a persistence or otherwise unexpected failure. The cause text is
// appended to the client message so store failures stay diagnosable.
func NewInternal(details string, err error) *AppError {
	msg := details
	if err != nil {
		msg = fmt.Sprintf("%s: %v", details, err)
	}
	return NewAppError(ErrInternal, msg, details, err)
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for any error.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	if err == nil || err.Error() == "" {
		return "Internal Server Error"
	}
	return err.Error()
}

// ToJSON renders the error body. The stack is only attached when includeStack is set.
func ToJSON(err error, includeStack bool) gin.H {
	body := gin.H{"error": Message(err)}
	if !includeStack {
		return body
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.stack != "" {
		body["stack"] = appErr.stack
	} else {
		body["stack"] = fmt.Sprintf("%s\n%s", Message(err), debug.Stack())
	}
	return body
}
