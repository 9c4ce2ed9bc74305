package testutil

import (
	"context"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// MockSecretsManagerClient mocks GetSecretValue. It is safe for concurrent use
// as long as GetSecretValueFunc is.
type MockSecretsManagerClient struct {
	GetSecretValueFunc func(context.Context, *secretsmanager.GetSecretValueInput, ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)

	calls atomic.Int32
}

// GetSecretValue mocks the Secrets Manager GetSecretValue operation.
func (m *MockSecretsManagerClient) GetSecretValue(
	ctx context.Context,
	params *secretsmanager.GetSecretValueInput,
	optFns ...func(*secretsmanager.Options),
) (*secretsmanager.GetSecretValueOutput, error) {
	m.calls.Add(1)
	if m.GetSecretValueFunc != nil {
		return m.GetSecretValueFunc(ctx, params, optFns...)
	}
	return &secretsmanager.GetSecretValueOutput{}, nil
}

// Calls returns the number of GetSecretValue calls received.
func (m *MockSecretsManagerClient) Calls() int {
	return int(m.calls.Load())
}

// StaticSecrets returns a mock that serves the given name to value map and
// answers ResourceNotFoundException for any other name.
func StaticSecrets(values map[string]string) *MockSecretsManagerClient {
	return &MockSecretsManagerClient{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			value, ok := values[aws.ToString(params.SecretId)]
			if !ok {
				return nil, APIError("ResourceNotFoundException", "Secrets Manager can't find the specified secret.")
			}
			return &secretsmanager.GetSecretValueOutput{
				Name:         params.SecretId,
				SecretString: aws.String(value),
			}, nil
		},
	}
}
