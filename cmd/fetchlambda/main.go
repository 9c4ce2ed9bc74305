// Command fetchlambda is the Lambda function invoked for S3 object events.
// It fetches API_URL and logs the JSON it returns.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/config"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/fetch"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/handler"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/logging"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/services/aws/secrets"
)

const secretCacheSize = 16

func main() {
	cfg, err := config.LoadLambda()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	h, err := newHandler(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialise handler", "error", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

// newHandler builds the clients once per execution environment so that
// warm invocations reuse connections and the secret cache.
func newHandler(ctx context.Context, cfg *config.Lambda, logger *slog.Logger) (*handler.Handler, error) {
	opts := []handler.Option{handler.WithLogger(logger)}

	if cfg.TokenSecretID != "" {
		sc, err := secrets.NewClient(ctx,
			secrets.WithRegion(cfg.Region),
			secrets.WithEndpoint(cfg.Endpoint),
			secrets.WithMaxRetries(cfg.MaxRetries),
			secrets.WithCacheTTL(cfg.SecretCacheTTL, secretCacheSize),
			secrets.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, handler.WithAPIToken(sc, cfg.TokenSecretID, cfg.TokenSecretKey))
	}

	if cfg.ArchiveBucket != "" {
		sc, err := s3.New(ctx,
			s3.WithRegion(cfg.Region),
			s3.WithEndpoint(cfg.Endpoint),
			s3.WithForcePathStyle(cfg.ForcePathStyle),
			s3.WithMaxRetries(cfg.MaxRetries),
			s3.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, handler.WithArchive(sc, cfg.ArchiveBucket, cfg.ArchivePrefix))
	}

	fetcher := fetch.New(
		fetch.WithTimeout(cfg.FetchTimeout),
		fetch.WithLogger(logger),
	)
	return handler.New(fetcher, cfg.APIURL, opts...), nil
}
