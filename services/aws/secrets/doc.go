// Package secrets provides a client for reading values from AWS Secrets
// Manager with optional in-memory caching.
//
// The client wraps the AWS SDK v2 secretsmanager service to provide:
//   - GetSecret for a single read and GetSecretCached for a read-through cache
//   - Pluggable caching via the Cache interface and InMemoryCache
//   - Typed errors (ErrSecretNotFound, ErrSecretEmpty, ErrAccessDenied)
//
// The package never logs secret values, only secret names. Reading a secret
// requires secretsmanager:GetSecretValue, plus kms:Decrypt when the secret is
// encrypted with a customer-managed key.
//
// # Thread safety
//
// All exported client methods are safe for concurrent use. A cache held by a
// package-level client survives across warm Lambda invocations.
package secrets
