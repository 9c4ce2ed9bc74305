// Package ddbtypes provides shared type definitions for the DynamoDB module.
package ddbtypes

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// ClientConfig holds configuration for the DynamoDB client.
type ClientConfig struct {
	Region          string
	Endpoint        string
	MaxRetries      int
	CustomAWSConfig *aws.Config
	Logger          *slog.Logger
}

// GetOptionConfig holds configuration for item reads.
type GetOptionConfig struct {
	// ConsistentRead requests a strongly consistent read
	ConsistentRead bool

	// Attributes limits the returned attributes; empty returns all of them
	Attributes []string
}

type (
	// Option is a functional option for configuring the DynamoDB client.
	Option func(*ClientConfig)
	// GetOption is a functional option for configuring item reads.
	GetOption func(*GetOptionConfig)
)
