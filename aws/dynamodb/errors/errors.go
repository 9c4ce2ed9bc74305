// Package errors provides error types and handling for DynamoDB table operations.
package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	codes "github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
)

// Error represents a failed table operation.
type Error struct {
	// Op is the operation that failed (e.g., "putItem", "getItem")
	Op string

	// Table is the table name (if applicable)
	Table string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

func (e *Error) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("dynamodb.%s table %s: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("dynamodb.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code classifies the error for exit codes and status codes.
func (e *Error) Code() codes.ErrorCode {
	switch {
	case errors.Is(e.Err, ErrInvalidInput):
		return codes.CodeInvalidInput
	case errors.Is(e.Err, ErrTableNotFound):
		return codes.CodeNotFound
	case errors.Is(e.Err, ErrConditionFailed):
		return codes.CodeConflict
	case errors.Is(e.Err, ErrThrottled):
		return codes.CodeRateLimit
	case errors.Is(e.Err, ErrAccessDenied):
		return codes.CodeForbidden
	case errors.Is(e.Err, context.DeadlineExceeded):
		return codes.CodeTimeout
	default:
		return codes.CodeDatabase
	}
}

// NewError creates a new Error with table context.
func NewError(op, table string, err error) *Error {
	return &Error{
		Op:    op,
		Table: table,
		Err:   err,
	}
}

// Sentinel errors for common table operation failures.
var (
	// ErrInvalidInput indicates a missing table name, key or value caught
	// before any request was sent
	ErrInvalidInput = errors.New("dynamodb: invalid input")

	// ErrValidation indicates that the service rejected the request, for
	// example a key that does not match the table's schema
	ErrValidation = errors.New("dynamodb: request rejected by service")

	// ErrTableNotFound indicates that the table does not exist or is not active
	ErrTableNotFound = errors.New("dynamodb: table not found")

	// ErrConditionFailed indicates that a condition expression evaluated to false
	ErrConditionFailed = errors.New("dynamodb: condition check failed")

	// ErrThrottled indicates that the request exceeded provisioned or account limits
	ErrThrottled = errors.New("dynamodb: request throttled")

	// ErrAccessDenied indicates that the credentials lack permission
	ErrAccessDenied = errors.New("dynamodb: access denied")
)

// FromAWS attaches the matching sentinel to an SDK error. The original error
// stays in the chain so that its service message remains available.
func FromAWS(err error) error {
	if err == nil {
		return nil
	}
	if sentinel := classify(err); sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}

func classify(err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return ErrTableNotFound
	}

	var conditionFailed *types.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		return ErrConditionFailed
	}

	var throughput *types.ProvisionedThroughputExceededException
	if errors.As(err, &throughput) {
		return ErrThrottled
	}

	var limit *types.RequestLimitExceeded
	if errors.As(err, &limit) {
		return ErrThrottled
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ResourceNotFoundException":
			return ErrTableNotFound
		case "ConditionalCheckFailedException":
			return ErrConditionFailed
		case "ThrottlingException", "ProvisionedThroughputExceededException", "RequestLimitExceeded":
			return ErrThrottled
		case "AccessDeniedException", "UnrecognizedClientException":
			return ErrAccessDenied
		case "ValidationException", "SerializationException":
			return ErrValidation
		}
	}

	return nil
}

// IsTableNotFound checks if an error indicates that the table was not found.
func IsTableNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound)
}

// IsConditionFailed checks if an error indicates a failed condition expression.
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsThrottled checks if an error indicates throttling.
func IsThrottled(err error) bool {
	return errors.Is(err, ErrThrottled)
}

// IsAccessDenied checks if an error indicates access was denied.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsValidation checks if the service rejected the request as invalid.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidInput checks if an error indicates invalid input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
