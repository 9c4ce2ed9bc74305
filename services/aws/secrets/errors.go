package secrets

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"
)

// AWS error codes mapped to package errors.
const (
	ResourceNotFoundException = "ResourceNotFoundException"
	AccessDeniedException     = "AccessDeniedException"
)

var (
	// ErrSecretNotFound is returned when a requested secret does not exist.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrSecretEmpty is returned when a secret exists but holds no value, or
	// when a requested JSON field is missing or empty.
	ErrSecretEmpty = errors.New("secret value is empty")

	// ErrAccessDenied is returned when the credentials lack
	// secretsmanager:GetSecretValue or kms:Decrypt on the secret.
	ErrAccessDenied = errors.New("access denied to secret")

	// ErrInvalidInput is returned for an empty secret name or a value that
	// cannot be decoded as requested.
	ErrInvalidInput = errors.New("invalid secret request")
)

// wrapAWSError maps an SDK error to a package sentinel. The service message
// is kept but the original error is not wrapped, so that callers matching on
// SDK types cannot bypass the sentinels.
func wrapAWSError(op string, err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%s: %w", op, ErrSecretNotFound)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case ResourceNotFoundException:
			return fmt.Errorf("%s: %w", op, ErrSecretNotFound)
		case AccessDeniedException:
			return fmt.Errorf("%s: %w", op, ErrAccessDenied)
		}
		return fmt.Errorf("%s operation failed: %s: %s", op, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}

	return fmt.Errorf("%s operation failed: %w", op, err)
}
