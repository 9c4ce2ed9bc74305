package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Client reads secrets from AWS Secrets Manager, optionally through a cache.
// All methods are safe for concurrent use.
type Client struct {
	api    ManagerAPI
	logger *slog.Logger
	cache  Cache
}

// NewClient creates a client from the default AWS credential chain.
//
// Example usage:
//
//	client, err := secrets.NewClient(ctx,
//	    secrets.WithLogger(slog.Default()),
//	    secrets.WithCacheTTL(5*time.Minute, 100),
//	)
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewClientWithConfig(ctx, &cfg, opts...)
}

// NewClientWithConfig creates a client from an existing AWS configuration.
// This is useful for testing with LocalStack or other custom AWS endpoints.
func NewClientWithConfig(_ context.Context, cfg *aws.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	options := applyOptions(opts)

	awsCfg := cfg.Copy()
	if options.region != "" {
		awsCfg.Region = options.region
	}
	if awsCfg.Region == "" {
		return nil, fmt.Errorf("config region cannot be empty")
	}
	if options.maxRetries > 0 {
		awsCfg.RetryMaxAttempts = options.maxRetries
	}

	api := secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if options.endpoint != "" {
			o.BaseEndpoint = aws.String(options.endpoint)
		}
	})

	return newClient(api, options), nil
}

// NewWithAPI creates a client around an existing ManagerAPI, typically a
// test double. Region, endpoint and retry options are ignored.
func NewWithAPI(api ManagerAPI, opts ...Option) *Client {
	return newClient(api, applyOptions(opts))
}

func newClient(api ManagerAPI, options *clientOptions) *Client {
	logger := options.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		api:    api,
		logger: logger,
		cache:  options.cache,
	}
}

// GetSecret retrieves the current value of a secret. Binary secrets are
// returned as their raw bytes converted to a string.
//
// Errors:
//   - ErrInvalidInput: If secretName is empty
//   - ErrSecretNotFound: If the secret doesn't exist
//   - ErrAccessDenied: If the credentials cannot read or decrypt the secret
//   - ErrSecretEmpty: If the secret has no value
func (c *Client) GetSecret(ctx context.Context, secretName string) (string, error) {
	if secretName == "" {
		return "", fmt.Errorf("GetSecret: %w: secret name cannot be empty", ErrInvalidInput)
	}

	// Secret values are never logged, only their names.
	c.logger.DebugContext(ctx, "retrieving secret", "secret_name", secretName)

	output, err := c.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to retrieve secret",
			"secret_name", secretName,
			"error", err)
		return "", wrapAWSError("GetSecret", err)
	}

	switch {
	case output.SecretString != nil && *output.SecretString != "":
		return *output.SecretString, nil
	case len(output.SecretBinary) > 0:
		return string(output.SecretBinary), nil
	default:
		return "", fmt.Errorf("GetSecret: %w", ErrSecretEmpty)
	}
}

// GetSecretCached is GetSecret with a read-through cache. Failed lookups are
// not cached. Without a configured cache it calls GetSecret directly.
//
// Example usage:
//
//	client := secrets.NewWithAPI(api, secrets.WithCacheTTL(5*time.Minute, 0))
//	token, err := client.GetSecretCached(ctx, "prod/api-token")
func (c *Client) GetSecretCached(ctx context.Context, secretName string) (string, error) {
	if c.cache == nil {
		return c.GetSecret(ctx, secretName)
	}

	if value, ok := c.cache.Get(secretName); ok {
		c.logger.DebugContext(ctx, "cache hit for secret", "secret_name", secretName)
		return value, nil
	}

	value, err := c.GetSecret(ctx, secretName)
	if err != nil {
		return "", err
	}

	c.cache.Set(secretName, value, 0)
	return value, nil
}

// InvalidateCache removes a secret from the cache so that the next
// GetSecretCached call reads it from the service.
func (c *Client) InvalidateCache(secretName string) {
	if c.cache == nil || secretName == "" {
		return
	}
	c.cache.Delete(secretName)
}

// Field extracts a top-level string field from a JSON secret value, the
// format the console uses for key/value secrets.
func Field(value, field string) (string, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(value), &fields); err != nil {
		return "", fmt.Errorf("%w: secret is not a JSON object", ErrInvalidInput)
	}

	raw, ok := fields[field]
	if !ok {
		return "", fmt.Errorf("%w: field %q not present", ErrSecretEmpty, field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not a string", ErrInvalidInput, field)
	}
	if s == "" {
		return "", fmt.Errorf("%w: field %q", ErrSecretEmpty, field)
	}
	return s, nil
}

// IsNotFound reports whether err means the secret does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSecretNotFound)
}
