package dynamodb

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb/ddbtypes"
)

// WithRegion sets the AWS region.
// If not specified, uses the region from the credential chain, then us-east-1.
func WithRegion(region string) ddbtypes.Option {
	return func(c *ddbtypes.ClientConfig) {
		c.Region = region
	}
}

// WithEndpoint sets a custom endpoint URL such as LocalStack or DynamoDB Local.
func WithEndpoint(endpoint string) ddbtypes.Option {
	return func(c *ddbtypes.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithMaxRetries sets the maximum number of attempts the SDK makes per request.
// Zero keeps the SDK default.
func WithMaxRetries(maxRetries int) ddbtypes.Option {
	return func(c *ddbtypes.ClientConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithAWSConfig provides a ready AWS configuration instead of loading the
// default credential chain.
func WithAWSConfig(config *aws.Config) ddbtypes.Option {
	return func(c *ddbtypes.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithLogger sets the logger for debug output from the client.
func WithLogger(logger *slog.Logger) ddbtypes.Option {
	return func(c *ddbtypes.ClientConfig) {
		c.Logger = logger
	}
}

// WithConsistentRead requests a strongly consistent read.
func WithConsistentRead() ddbtypes.GetOption {
	return func(c *ddbtypes.GetOptionConfig) {
		c.ConsistentRead = true
	}
}

// WithAttributes limits a read to the named attributes.
func WithAttributes(names ...string) ddbtypes.GetOption {
	return func(c *ddbtypes.GetOptionConfig) {
		c.Attributes = append(c.Attributes, names...)
	}
}
