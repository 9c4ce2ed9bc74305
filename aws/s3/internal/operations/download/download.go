// Package download retrieves S3 objects into writers and local files.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	s3errors "github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/internal/s3api"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/s3types"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs"
)

// Config holds per-download settings.
type Config struct {
	RangeSpec string
}

// Downloader handles S3 download operations.
type Downloader struct {
	s3Client s3api.S3API
}

// New creates a new Downloader instance.
func New(s3Client s3api.S3API) *Downloader {
	return &Downloader{
		s3Client: s3Client,
	}
}

func (d *Downloader) get(ctx context.Context, bucket, key string, config *Config) (*s3.GetObjectOutput, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if config != nil && config.RangeSpec != "" {
		input.Range = aws.String(config.RangeSpec)
	}

	output, err := d.s3Client.GetObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("get object: %w", s3errors.FromAWS(err))
	}
	return output, nil
}

// Download streams an object into w.
func (d *Downloader) Download(
	ctx context.Context,
	bucket, key string,
	w io.Writer,
	config *Config,
) (*s3types.DownloadResult, error) {
	start := time.Now()

	output, err := d.get(ctx, bucket, key, config)
	if err != nil {
		return nil, err
	}
	defer output.Body.Close()

	n, err := io.Copy(w, output.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body: %w", err)
	}

	return &s3types.DownloadResult{
		Key:       key,
		Size:      n,
		ETag:      aws.ToString(output.ETag),
		VersionID: aws.ToString(output.VersionId),
		Duration:  time.Since(start),
	}, nil
}

// DownloadFile writes an object to path on fsys, creating missing parent
// directories. The object is requested before anything is created, so a
// missing object leaves no file behind. A partially written file is removed
// when the transfer fails.
func (d *Downloader) DownloadFile(
	ctx context.Context,
	bucket, key, path string,
	fsys fs.Filesystem,
	config *Config,
) (*s3types.DownloadResult, error) {
	start := time.Now()

	output, err := d.get(ctx, bucket, key, config)
	if err != nil {
		return nil, err
	}
	defer output.Body.Close()

	if dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator) {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create local directory: %w", err)
		}
	}

	file, err := fsys.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create local file: %w", err)
	}

	n, copyErr := io.Copy(file, output.Body)
	closeErr := file.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = fsys.Remove(path)
		return nil, fmt.Errorf("write local file: %w", err)
	}

	return &s3types.DownloadResult{
		Key:       key,
		Size:      n,
		ETag:      aws.ToString(output.ETag),
		VersionID: aws.ToString(output.VersionId),
		Duration:  time.Since(start),
	}, nil
}
