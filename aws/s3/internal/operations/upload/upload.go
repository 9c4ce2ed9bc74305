// Package upload sends local data to S3. Small payloads go up in a single
// PutObject call; files at or above the multipart threshold are split into
// parts that are uploaded one after another.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3errors "github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/internal/s3api"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/s3types"
)

// Config holds the per-upload settings resolved by the client.
type Config struct {
	ContentType        string
	Metadata           map[string]string
	StorageClass       s3types.StorageClass
	PartSize           int64
	MultipartThreshold int64
}

// Uploader performs S3 uploads.
type Uploader struct {
	s3Client s3api.S3API
	logger   *slog.Logger
}

// New creates a new Uploader instance.
func New(s3Client s3api.S3API, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Uploader{
		s3Client: s3Client,
		logger:   logger,
	}
}

// Put uploads an in-memory payload with a single PutObject call.
func (u *Uploader) Put(
	ctx context.Context,
	bucket, key string,
	data []byte,
	config *Config,
) (*s3types.UploadResult, error) {
	return u.putObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), config, time.Now())
}

// UploadFile uploads size bytes read from src. The multipart path is taken
// when size reaches the configured threshold.
func (u *Uploader) UploadFile(
	ctx context.Context,
	bucket, key string,
	src io.ReaderAt,
	size int64,
	config *Config,
) (*s3types.UploadResult, error) {
	start := time.Now()

	threshold := config.MultipartThreshold
	if threshold <= 0 {
		threshold = s3types.DefaultMultipartThreshold
	}
	if size >= threshold {
		return u.uploadMultipart(ctx, bucket, key, src, size, config, start)
	}

	return u.putObject(ctx, bucket, key, io.NewSectionReader(src, 0, size), size, config, start)
}

func (u *Uploader) putObject(
	ctx context.Context,
	bucket, key string,
	body io.ReadSeeker,
	size int64,
	config *Config,
	start time.Time,
) (*s3types.UploadResult, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if config.ContentType != "" {
		input.ContentType = aws.String(config.ContentType)
	}
	if config.StorageClass != "" {
		input.StorageClass = awstypes.StorageClass(config.StorageClass)
	}
	if len(config.Metadata) > 0 {
		input.Metadata = config.Metadata
	}

	output, err := u.s3Client.PutObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("put object: %w", s3errors.FromAWS(err))
	}

	return &s3types.UploadResult{
		Key:       key,
		Size:      size,
		ETag:      aws.ToString(output.ETag),
		VersionID: aws.ToString(output.VersionId),
		Duration:  time.Since(start),
	}, nil
}

// PartSize returns the part size used for an object of the given size. It
// never goes below the S3 minimum and grows when the configured size would
// need more than MaxParts parts.
func PartSize(configured, size int64) int64 {
	partSize := configured
	if partSize <= 0 {
		partSize = s3types.DefaultPartSize
	}
	if partSize < s3types.MinPartSize {
		partSize = s3types.MinPartSize
	}
	if size > partSize*s3types.MaxParts {
		partSize = (size + s3types.MaxParts - 1) / s3types.MaxParts
	}
	return partSize
}

func (u *Uploader) uploadMultipart(
	ctx context.Context,
	bucket, key string,
	src io.ReaderAt,
	size int64,
	config *Config,
	start time.Time,
) (*s3types.UploadResult, error) {
	createInput := &s3.CreateMultipartUploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if config.ContentType != "" {
		createInput.ContentType = aws.String(config.ContentType)
	}
	if config.StorageClass != "" {
		createInput.StorageClass = awstypes.StorageClass(config.StorageClass)
	}
	if len(config.Metadata) > 0 {
		createInput.Metadata = config.Metadata
	}

	createOutput, err := u.s3Client.CreateMultipartUpload(ctx, createInput)
	if err != nil {
		return nil, fmt.Errorf("create multipart upload: %w", s3errors.FromAWS(err))
	}
	uploadID := aws.ToString(createOutput.UploadId)

	partSize := PartSize(config.PartSize, size)
	u.logger.DebugContext(ctx, "multipart upload started",
		"bucket", bucket,
		"key", key,
		"upload_id", uploadID,
		"size", size,
		"part_size", partSize,
	)

	var parts []awstypes.CompletedPart
	for offset, number := int64(0), int32(1); offset < size; offset, number = offset+partSize, number+1 {
		n := min(partSize, size-offset)

		partOutput, err := u.s3Client.UploadPart(ctx, &s3.UploadPartInput{
			Bucket:        aws.String(bucket),
			Key:           aws.String(key),
			UploadId:      aws.String(uploadID),
			PartNumber:    aws.Int32(number),
			Body:          io.NewSectionReader(src, offset, n),
			ContentLength: aws.Int64(n),
		})
		if err != nil {
			u.abort(ctx, bucket, key, uploadID)
			return nil, fmt.Errorf("upload part %d: %w", number, s3errors.FromAWS(err))
		}

		parts = append(parts, awstypes.CompletedPart{
			ETag:       partOutput.ETag,
			PartNumber: aws.Int32(number),
		})
		u.logger.DebugContext(ctx, "part uploaded", "key", key, "part", number, "bytes", n)
	}

	completeOutput, err := u.s3Client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(bucket),
		Key:             aws.String(key),
		UploadId:        aws.String(uploadID),
		MultipartUpload: &awstypes.CompletedMultipartUpload{Parts: parts},
	})
	if err != nil {
		u.abort(ctx, bucket, key, uploadID)
		return nil, fmt.Errorf("complete multipart upload: %w", s3errors.FromAWS(err))
	}

	return &s3types.UploadResult{
		Key:       key,
		Size:      size,
		ETag:      aws.ToString(completeOutput.ETag),
		VersionID: aws.ToString(completeOutput.VersionId),
		Parts:     len(parts),
		Duration:  time.Since(start),
	}, nil
}

// abort discards the parts of a failed upload. It runs even when ctx has
// been cancelled so that no orphaned parts are left behind.
func (u *Uploader) abort(ctx context.Context, bucket, key, uploadID string) {
	_, err := u.s3Client.AbortMultipartUpload(context.WithoutCancel(ctx), &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})
	if err != nil {
		u.logger.WarnContext(ctx, "failed to abort multipart upload",
			"bucket", bucket,
			"key", key,
			"upload_id", uploadID,
			"error", err,
		)
	}
}
