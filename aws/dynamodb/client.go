package dynamodb

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb/ddbtypes"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb/internal/ddbapi"
)

// DefaultRegion is used when neither the options nor the credential chain name a region.
const DefaultRegion = "us-east-1"

// Client performs item operations on DynamoDB tables. It is safe for concurrent use.
type Client struct {
	api    ddbapi.API
	config aws.Config
	logger *slog.Logger
}

// New creates a DynamoDB client. It loads AWS credentials using the default
// credential chain unless WithAWSConfig is given.
//
// Example:
//
//	client, err := dynamodb.New(ctx,
//	    dynamodb.WithRegion("eu-west-1"),
//	    dynamodb.WithEndpoint("http://localhost:8000"),
//	)
func New(ctx context.Context, opts ...ddbtypes.Option) (*Client, error) {
	clientCfg := &ddbtypes.ClientConfig{}
	for _, opt := range opts {
		opt(clientCfg)
	}

	var cfg aws.Config
	if clientCfg.CustomAWSConfig != nil {
		cfg = clientCfg.CustomAWSConfig.Copy()
	} else {
		var err error
		cfg, err = config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, errors.NewError("client initialization", "", err)
		}
	}

	if clientCfg.Region != "" {
		cfg.Region = clientCfg.Region
	} else if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	if clientCfg.MaxRetries > 0 {
		cfg.RetryMaxAttempts = clientCfg.MaxRetries
	}

	api := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if clientCfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(clientCfg.Endpoint)
		}
	})

	c := newClient(api, clientCfg)
	c.config = cfg
	return c, nil
}

// NewWithClient creates a client around an existing API implementation,
// typically a test double. Only WithLogger applies.
func NewWithClient(api ddbapi.API, opts ...ddbtypes.Option) *Client {
	clientCfg := &ddbtypes.ClientConfig{}
	for _, opt := range opts {
		opt(clientCfg)
	}
	return newClient(api, clientCfg)
}

func newClient(api ddbapi.API, clientCfg *ddbtypes.ClientConfig) *Client {
	logger := clientCfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{api: api, logger: logger}
}

// Region returns the region the client sends requests to.
func (c *Client) Region() string {
	return c.config.Region
}
