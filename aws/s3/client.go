package s3

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/internal/s3api"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/s3types"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs/billy"
)

// DefaultRegion is used when neither the options nor the credential chain name a region.
const DefaultRegion = "us-east-1"

// Client performs bucket operations. It is safe for concurrent use.
type Client struct {
	// s3Client is the underlying AWS SDK S3 client or a test double
	s3Client s3api.S3API

	// config holds the AWS configuration the client was built from
	config aws.Config

	// fs reads upload sources and writes download targets
	fs fs.Filesystem

	partSize           int64
	multipartThreshold int64
	logger             *slog.Logger
}

func defaultClientConfig() *s3types.ClientConfig {
	return &s3types.ClientConfig{
		PartSize:           s3types.DefaultPartSize,
		MultipartThreshold: s3types.DefaultMultipartThreshold,
	}
}

// New creates a new S3 client with the provided options.
// It loads AWS credentials using the default credential chain
// and applies the specified configuration options.
//
// Example:
//
//	client, err := s3.New(ctx,
//	    s3.WithRegion("us-west-2"),
//	    s3.WithEndpoint("http://localhost:4566"),
//	    s3.WithForcePathStyle(true),
//	)
func New(ctx context.Context, opts ...s3types.Option) (*Client, error) {
	clientCfg := defaultClientConfig()
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
			return nil, errors.NewError("client initialization", err)
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

	var s3Opts []func(*s3.Options)
	if clientCfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(clientCfg.Endpoint)
		})
	}
	if clientCfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	if clientCfg.Timeout > 0 {
		httpClient := &http.Client{Timeout: clientCfg.Timeout}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	c := newClient(s3.NewFromConfig(cfg, s3Opts...), clientCfg)
	c.config = cfg
	return c, nil
}

// NewWithClient creates a client around an existing S3API implementation,
// typically a test double. Options that configure the AWS connection are
// ignored; filesystem, part size, threshold and logger options apply.
func NewWithClient(s3Client s3api.S3API, opts ...s3types.Option) *Client {
	clientCfg := defaultClientConfig()
	for _, opt := range opts {
		opt(clientCfg)
	}
	return newClient(s3Client, clientCfg)
}

func newClient(api s3api.S3API, clientCfg *s3types.ClientConfig) *Client {
	filesystem := clientCfg.Filesystem
	if filesystem == nil {
		filesystem = billy.NewBaseOSFS()
	}
	logger := clientCfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		s3Client:           api,
		fs:                 filesystem,
		partSize:           clientCfg.PartSize,
		multipartThreshold: clientCfg.MultipartThreshold,
		logger:             logger,
	}
}

// Region returns the region the client sends requests to.
func (c *Client) Region() string {
	return c.config.Region
}
