package s3

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	s3errors "github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/internal/operations/download"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/internal/operations/upload"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/internal/validation"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/s3types"
)

const (
	// DefaultContentType is used when content type detection fails
	DefaultContentType = "application/octet-stream"

	// sniffLen is the number of leading bytes inspected for content type detection
	sniffLen = 3072
)

// List returns one page of objects under prefix.
//
// Returns:
//   - *ListResult: the objects on this page and whether more remain
//   - error: Returns an error if the listing fails
//
// Errors:
//   - ErrInvalidBucketName: If the bucket name is not valid
//   - ErrBucketNotFound: If the bucket doesn't exist
//   - ErrAccessDenied: If the credentials lack permission to list
//
// Example:
//
//	page, err := client.List(ctx, "my-bucket", "photos/", s3.WithMaxKeys(100))
//	if err != nil {
//	    return err
//	}
//	for _, obj := range page.Objects {
//	    fmt.Printf("%s (%d bytes)\n", obj.Key, obj.Size)
//	}
//	if page.IsTruncated {
//	    fmt.Println("more objects not shown")
//	}
func (c *Client) List(
	ctx context.Context,
	bucket, prefix string,
	opts ...s3types.ListOption,
) (*s3types.ListResult, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, s3errors.NewBucketError("list", bucket, err)
	}

	config := &s3types.ListOptionConfig{MaxKeys: 1000}
	for _, opt := range opts {
		opt(config)
	}

	start := time.Now()
	output, err := c.s3Client.ListObjectsV2(ctx, listInput(bucket, prefix, config))
	if err != nil {
		return nil, s3errors.NewBucketError("list", bucket, s3errors.FromAWS(err))
	}

	return &s3types.ListResult{
		Objects:     convertObjects(output),
		IsTruncated: aws.ToBool(output.IsTruncated),
		Duration:    time.Since(start),
	}, nil
}

// Walk calls fn for every object under prefix, following continuation
// tokens until the listing is exhausted. Iteration stops at the first error
// returned by fn or by the service, and that error is returned.
//
// Errors:
//   - ErrInvalidBucketName: If the bucket name is not valid
//   - ErrBucketNotFound: If the bucket doesn't exist
//   - Any error returned by fn, unchanged
//
// Example:
//
//	err := client.Walk(ctx, "my-bucket", "", func(obj s3types.Object) error {
//	    fmt.Printf("- %s (Size: %d bytes)\n", obj.Key, obj.Size)
//	    return nil
//	})
func (c *Client) Walk(
	ctx context.Context,
	bucket, prefix string,
	fn func(s3types.Object) error,
	opts ...s3types.ListOption,
) error {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return s3errors.NewBucketError("walk", bucket, err)
	}

	config := &s3types.ListOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	paginator := s3.NewListObjectsV2Paginator(c.s3Client, listInput(bucket, prefix, config))
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return s3errors.NewBucketError("walk", bucket, s3errors.FromAWS(err))
		}
		for _, obj := range convertObjects(page) {
			if err := fn(obj); err != nil {
				return err
			}
		}
	}
	return nil
}

func listInput(bucket, prefix string, config *s3types.ListOptionConfig) *s3.ListObjectsV2Input {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	if config.MaxKeys > 0 {
		input.MaxKeys = aws.Int32(config.MaxKeys)
	}
	return input
}

func convertObjects(output *s3.ListObjectsV2Output) []s3types.Object {
	objects := make([]s3types.Object, 0, len(output.Contents))
	for _, obj := range output.Contents {
		objects = append(objects, s3types.Object{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         aws.ToString(obj.ETag),
			StorageClass: string(obj.StorageClass),
		})
	}
	return objects
}

// UploadFile uploads a local file to bucket under key.
// Files at or above the multipart threshold (100MiB by default) are sent as
// a multipart upload; smaller files use a single PUT. The content type is
// sniffed from the file unless WithContentType is given.
//
// Returns:
//   - *UploadResult: Contains the uploaded object's metadata including ETag and duration
//   - error: Returns an error if the upload fails
//
// Errors:
//   - ErrFileNotFound: If the local file does not exist
//   - ErrInvalidInput: If the path is a directory or an option is invalid
//   - ErrInvalidBucketName / ErrInvalidObjectKey: If bucket or key are not valid,
//     including keys that start with "/" or contain ".." segments
//   - ErrBucketNotFound: If the bucket doesn't exist
//   - ErrAccessDenied: If the credentials lack permission to upload
//
// Example:
//
//	result, err := client.UploadFile(ctx, "my-bucket", "reports/q3.csv", "q3.csv")
//	if s3errors.IsFileNotFound(err) {
//	    log.Printf("The file was not found: q3.csv")
//	}
func (c *Client) UploadFile(
	ctx context.Context,
	bucket, key, path string,
	opts ...s3types.UploadOption,
) (*s3types.UploadResult, error) {
	const op = "uploadFile"

	if err := c.validateUpload(bucket, key); err != nil {
		return nil, s3errors.NewObjectError(op, bucket, key, err)
	}
	if path == "" {
		return nil, s3errors.NewObjectError(op, bucket, key, s3errors.ErrInvalidInput).
			WithMessage("file path cannot be empty")
	}

	config, err := c.uploadConfig(opts)
	if err != nil {
		return nil, s3errors.NewObjectError(op, bucket, key, err)
	}

	info, err := c.fs.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, s3errors.NewObjectError(op, bucket, key, s3errors.ErrFileNotFound).WithMessage(path)
		}
		return nil, s3errors.NewObjectError(op, bucket, key, err)
	}
	if info.IsDir() {
		return nil, s3errors.NewObjectError(op, bucket, key, s3errors.ErrInvalidInput).
			WithMessage("file path points to a directory, not a file")
	}

	file, err := c.fs.Open(path)
	if err != nil {
		return nil, s3errors.NewObjectError(op, bucket, key, err)
	}
	defer file.Close()

	if config.ContentType == "" {
		config.ContentType = detectContentType(file, path)
	}

	c.logger.DebugContext(ctx, "uploading file",
		"bucket", bucket,
		"key", key,
		"path", path,
		"size", info.Size(),
		"content_type", config.ContentType,
	)

	result, err := upload.New(c.s3Client, c.logger).UploadFile(ctx, bucket, key, file, info.Size(), config)
	if err != nil {
		return nil, s3errors.NewObjectError(op, bucket, key, err)
	}
	return result, nil
}

// Put uploads an in-memory payload with a single PUT.
// Ideal for JSON documents and other small objects.
//
// Errors:
//   - ErrInvalidBucketName / ErrInvalidObjectKey: If bucket or key are not valid
//   - ErrBucketNotFound: If the bucket doesn't exist
//   - ErrAccessDenied: If the credentials lack permission to upload
//
// Example:
//
//	err := client.Put(ctx, "my-bucket", "api-responses/data.json", payload,
//	    s3.WithContentType("application/json"),
//	)
func (c *Client) Put(ctx context.Context, bucket, key string, data []byte, opts ...s3types.UploadOption) error {
	const op = "put"

	if err := c.validateObject(bucket, key); err != nil {
		return s3errors.NewObjectError(op, bucket, key, err)
	}

	config, err := c.uploadConfig(opts)
	if err != nil {
		return s3errors.NewObjectError(op, bucket, key, err)
	}
	if config.ContentType == "" {
		config.ContentType = contentTypeFromExtension(key)
	}
	if config.ContentType == DefaultContentType && len(data) > 0 {
		config.ContentType = mimetype.Detect(data).String()
	}

	if _, err := upload.New(c.s3Client, c.logger).Put(ctx, bucket, key, data, config); err != nil {
		return s3errors.NewObjectError(op, bucket, key, err)
	}
	return nil
}

// Download streams an object into w.
//
// Errors:
//   - ErrObjectNotFound: If the object doesn't exist
//   - ErrBucketNotFound: If the bucket doesn't exist
//   - ErrAccessDenied: If the credentials lack permission to read
func (c *Client) Download(
	ctx context.Context,
	bucket, key string,
	w io.Writer,
	opts ...s3types.DownloadOption,
) (*s3types.DownloadResult, error) {
	if err := c.validateObject(bucket, key); err != nil {
		return nil, s3errors.NewObjectError("download", bucket, key, err)
	}

	result, err := download.New(c.s3Client).Download(ctx, bucket, key, w, downloadConfig(opts))
	if err != nil {
		return nil, s3errors.NewObjectError("download", bucket, key, err)
	}
	return result, nil
}

// DownloadFile downloads an object to a local file, creating or truncating it.
// The object is requested first, so when it does not exist no local file is
// created and the error matches ErrObjectNotFound.
//
// Returns:
//   - *DownloadResult: Contains the number of bytes written and the object's ETag
//   - error: Returns an error if the download fails
//
// Errors:
//   - ErrObjectNotFound: If the object doesn't exist
//   - ErrBucketNotFound: If the bucket doesn't exist
//   - ErrAccessDenied: If the credentials lack permission to read
//   - File system errors if the local file cannot be written
//
// Example:
//
//	_, err := client.DownloadFile(ctx, "my-bucket", "reports/q3.csv", "q3.csv")
//	if s3errors.IsObjectNotFound(err) {
//	    log.Printf("The object reports/q3.csv does not exist in bucket my-bucket.")
//	}
func (c *Client) DownloadFile(
	ctx context.Context,
	bucket, key, path string,
	opts ...s3types.DownloadOption,
) (*s3types.DownloadResult, error) {
	const op = "downloadFile"

	if err := c.validateObject(bucket, key); err != nil {
		return nil, s3errors.NewObjectError(op, bucket, key, err)
	}
	if path == "" {
		return nil, s3errors.NewObjectError(op, bucket, key, s3errors.ErrInvalidInput).
			WithMessage("file path cannot be empty")
	}

	c.logger.DebugContext(ctx, "downloading object", "bucket", bucket, "key", key, "path", path)

	result, err := download.New(c.s3Client).DownloadFile(ctx, bucket, key, path, c.fs, downloadConfig(opts))
	if err != nil {
		return nil, s3errors.NewObjectError(op, bucket, key, err)
	}
	return result, nil
}

// Get returns the whole object in memory. Only use it for small objects.
func (c *Client) Get(ctx context.Context, bucket, key string, opts ...s3types.DownloadOption) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.Download(ctx, bucket, key, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Client) validateObject(bucket, key string) error {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return err
	}
	return validation.ValidateObjectKey(key)
}

// validateUpload is validateObject plus the traversal check for keys that
// usually come from local paths.
func (c *Client) validateUpload(bucket, key string) error {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return err
	}
	return validation.ValidateUploadKey(key)
}

func (c *Client) uploadConfig(opts []s3types.UploadOption) (*upload.Config, error) {
	config := &s3types.UploadOptionConfig{PartSize: c.partSize}
	for _, opt := range opts {
		opt(config)
	}

	if err := validation.ValidateContentType(config.ContentType); err != nil {
		return nil, err
	}
	if err := validation.ValidateMetadata(config.Metadata); err != nil {
		return nil, err
	}

	return &upload.Config{
		ContentType:        config.ContentType,
		Metadata:           config.Metadata,
		StorageClass:       config.StorageClass,
		PartSize:           config.PartSize,
		MultipartThreshold: c.multipartThreshold,
	}, nil
}

func downloadConfig(opts []s3types.DownloadOption) *download.Config {
	config := &s3types.DownloadOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return &download.Config{RangeSpec: config.RangeSpec}
}

// detectContentType sniffs the leading bytes of src with mimetype and falls
// back to the file extension when the content is not recognised.
func detectContentType(src io.ReaderAt, path string) string {
	buf := make([]byte, sniffLen)
	n, err := src.ReadAt(buf, 0)
	if n > 0 && (err == nil || stderrors.Is(err, io.EOF)) {
		if mt := mimetype.Detect(buf[:n]); mt.String() != DefaultContentType {
			return mt.String()
		}
	}
	return contentTypeFromExtension(path)
}

func contentTypeFromExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return DefaultContentType
}
