// Command s3files lists, uploads and downloads objects of one bucket.
//
//	s3files list
//	s3files upload <source> [destination]
//	s3files download <source> <destination>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/cli"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/cli/s3files"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/config"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadS3Files()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return errors.ExitCode(err)
	}
	if cfg.IsPlaceholder() {
		s3files.PrintPlaceholderBanner(os.Stdout)
		return errors.ExitOK
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	client, err := s3.New(ctx,
		s3.WithRegion(cfg.Region),
		s3.WithEndpoint(cfg.Endpoint),
		s3.WithForcePathStyle(cfg.ForcePathStyle),
		s3.WithMaxRetries(cfg.MaxRetries),
		s3.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create S3 client", "error", err)
		return errors.ExitFailure
	}

	return cli.Execute(ctx, s3files.NewCommand(client, cfg.Bucket, logger), os.Args[1:], os.Stderr)
}
