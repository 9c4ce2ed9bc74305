// Package s3types provides shared type definitions for the S3 module.
package s3types

import (
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs"
)

// StorageClass represents the S3 storage class for objects.
type StorageClass string

// Storage classes accepted by uploads.
const (
	StorageClassStandard           StorageClass = "STANDARD"
	StorageClassStandardIA         StorageClass = "STANDARD_IA"
	StorageClassIntelligentTiering StorageClass = "INTELLIGENT_TIERING"
	StorageClassGlacierIR          StorageClass = "GLACIER_IR"
)

// Multipart limits.
const (
	// MinPartSize is the smallest part S3 accepts, except for the last part.
	MinPartSize int64 = 5 * 1024 * 1024

	// DefaultPartSize is used when no part size is configured.
	DefaultPartSize int64 = 8 * 1024 * 1024

	// DefaultMultipartThreshold is the file size at which uploads switch to multipart.
	DefaultMultipartThreshold int64 = 100 * 1024 * 1024

	// MaxParts is the maximum number of parts in one multipart upload.
	MaxParts = 10000
)

// Object represents an S3 object with its basic metadata.
type Object struct {
	// Key is the S3 object key (path)
	Key string

	// Size is the object size in bytes
	Size int64

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the S3 entity tag for the object
	ETag string

	// StorageClass is the S3 storage class
	StorageClass string
}

// UploadResult contains the result of an upload operation.
type UploadResult struct {
	// Key is the S3 object key that was uploaded
	Key string

	// Size is the size of the uploaded object in bytes
	Size int64

	// ETag is the S3 entity tag for the uploaded object
	ETag string

	// VersionID is the version ID if versioning is enabled
	VersionID string

	// Parts is the number of parts sent; zero for a single PUT
	Parts int

	// Duration is how long the upload took
	Duration time.Duration
}

// DownloadResult contains the result of a download operation.
type DownloadResult struct {
	// Key is the S3 object key that was downloaded
	Key string

	// Size is the number of bytes written locally
	Size int64

	// ETag is the S3 entity tag for the downloaded object
	ETag string

	// VersionID is the version ID if versioning is enabled
	VersionID string

	// Duration is how long the download took
	Duration time.Duration
}

// ListResult contains one page of a list operation.
type ListResult struct {
	// Objects contains the listed objects
	Objects []Object

	// IsTruncated indicates if more objects remain after this page
	IsTruncated bool

	// Duration is how long the operation took
	Duration time.Duration
}

// ClientConfig holds configuration for the S3 client.
type ClientConfig struct {
	Region             string
	Endpoint           string
	MaxRetries         int
	Timeout            time.Duration
	PartSize           int64
	MultipartThreshold int64
	ForcePathStyle     bool
	CustomAWSConfig    *aws.Config
	Filesystem         fs.Filesystem
	Logger             *slog.Logger
}

// UploadOptionConfig holds configuration for upload operations via functional options.
type UploadOptionConfig struct {
	ContentType  string
	Metadata     map[string]string
	StorageClass StorageClass
	PartSize     int64
}

// DownloadOptionConfig holds configuration for download operations via functional options.
type DownloadOptionConfig struct {
	// RangeSpec is an HTTP Range header value such as "bytes=0-1023"
	RangeSpec string
}

// ListOptionConfig holds configuration for list operations via functional options.
type ListOptionConfig struct {
	// MaxKeys is the page size, 1-1000
	MaxKeys int32
}

type (
	// Option is a functional option for configuring the S3 client.
	Option func(*ClientConfig)
	// UploadOption is a functional option for configuring S3 upload operations.
	UploadOption func(*UploadOptionConfig)
	// DownloadOption is a functional option for configuring S3 download operations.
	DownloadOption func(*DownloadOptionConfig)
	// ListOption is a functional option for configuring S3 list operations.
	ListOption func(*ListOptionConfig)
)
