package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/aws/smithy-go"
)

// Coder is implemented by errors that know their own classification.
type Coder interface {
	Code() ErrorCode
}

// Error is a classified error with an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// New creates an Error with no underlying cause.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap classifies err under code. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return e.Message + ": " + e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the classification of err. The outermost *Error wins, then
// any wrapped Coder, then context errors. Everything else is CodeUnknown.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var pe *Error
	if stderrors.As(err, &pe) && pe.Code != "" {
		return pe.Code
	}

	var c Coder
	if stderrors.As(err, &c) {
		return c.Code()
	}

	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case stderrors.Is(err, context.Canceled):
		return CodeUnavailable
	}
	return CodeUnknown
}

// Exit statuses returned by the CLIs.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps err to a process exit status. Input and configuration
// problems are usage errors; everything else is a failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch CodeOf(err) {
	case CodeInvalidInput, CodeInvalidConfig:
		return ExitUsage
	default:
		return ExitFailure
	}
}

// HTTPStatus maps err to the status code reported by the Lambda handler.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if CodeOf(err) == CodeInvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Message returns the service's own error message when err wraps an AWS API
// error, and err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return err.Error()
}
