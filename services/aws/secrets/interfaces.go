package secrets

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// ManagerAPI is the subset of the Secrets Manager API used by Client.
// *secretsmanager.Client satisfies it.
type ManagerAPI interface {
	// GetSecretValue retrieves the value of a secret from AWS Secrets Manager.
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

var _ ManagerAPI = (*secretsmanager.Client)(nil)

// Cache stores secret values between lookups. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the cached value and true if present and not expired.
	Get(key string) (string, bool)

	// Set stores value under key. A zero ttl selects the cache default.
	Set(key, value string, ttl time.Duration)

	// Delete removes key from the cache.
	Delete(key string)
}
