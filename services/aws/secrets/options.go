package secrets

import (
	"log/slog"
	"time"
)

type clientOptions struct {
	logger     *slog.Logger
	cache      Cache
	region     string
	endpoint   string
	maxRetries int
}

// Option is a functional option for configuring the Client.
type Option func(*clientOptions)

// WithLogger configures the client with a custom logger.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *clientOptions) {
		opts.logger = logger
	}
}

// WithCache configures the cache used by GetSecretCached.
// If cache is nil, GetSecretCached behaves like GetSecret.
func WithCache(cache Cache) Option {
	return func(opts *clientOptions) {
		opts.cache = cache
	}
}

// WithCacheTTL installs an InMemoryCache with the given TTL and size bound.
// A non-positive ttl leaves caching disabled.
func WithCacheTTL(ttl time.Duration, maxSize int) Option {
	return func(opts *clientOptions) {
		if ttl > 0 {
			opts.cache = NewInMemoryCache(ttl, maxSize)
		}
	}
}

// WithRegion overrides the region from the AWS configuration.
func WithRegion(region string) Option {
	return func(opts *clientOptions) {
		opts.region = region
	}
}

// WithEndpoint sets a custom endpoint URL, such as a LocalStack address.
func WithEndpoint(endpoint string) Option {
	return func(opts *clientOptions) {
		opts.endpoint = endpoint
	}
}

// WithMaxRetries sets the maximum number of attempts the SDK makes per request.
// Zero keeps the SDK default.
func WithMaxRetries(maxRetries int) Option {
	return func(opts *clientOptions) {
		opts.maxRetries = maxRetries
	}
}

func applyOptions(options []Option) *clientOptions {
	opts := &clientOptions{}
	for _, option := range options {
		option(opts)
	}
	return opts
}
