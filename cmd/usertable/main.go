// Command usertable puts, gets and updates items of the users table.
//
//	usertable put --userId 101 --firstName John --lastName Doe
//	usertable get --userId 101
//	usertable update --userId 101 --age 31
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/dynamodb"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/cli"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/cli/usertable"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/config"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/logging"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/users"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadUserTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return errors.ExitCode(err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	client, err := dynamodb.New(ctx,
		dynamodb.WithRegion(cfg.Region),
		dynamodb.WithEndpoint(cfg.Endpoint),
		dynamodb.WithMaxRetries(cfg.MaxRetries),
		dynamodb.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create DynamoDB client", "error", err)
		return errors.ExitFailure
	}

	svc := users.NewService(client, cfg.TableName)
	return cli.Execute(ctx, usertable.NewCommand(svc, svc.Table()), os.Args[1:], os.Stderr)
}
