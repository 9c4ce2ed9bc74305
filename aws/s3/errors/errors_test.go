package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	codes "github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
)

type statusErr int

func (e statusErr) Error() string       { return fmt.Sprintf("http %d", int(e)) }
func (e statusErr) HTTPStatusCode() int { return int(e) }

func TestFromAWS(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no such key", &types.NoSuchKey{Message: aws.String("missing")}, ErrObjectNotFound},
		{"not found", &types.NotFound{}, ErrObjectNotFound},
		{"no such bucket", &types.NoSuchBucket{}, ErrBucketNotFound},
		{"api code not found", &smithy.GenericAPIError{Code: "NotFound"}, ErrObjectNotFound},
		{"api code access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, ErrAccessDenied},
		{"api code slow down", &smithy.GenericAPIError{Code: "SlowDown"}, ErrTooManyRequests},
		{"http 404", statusErr(404), ErrObjectNotFound},
		{"http 403", statusErr(403), ErrAccessDenied},
		{"wrapped", fmt.Errorf("operation error S3: GetObject: %w", &types.NoSuchKey{}), ErrObjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromAWS(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "original error must stay in the chain")
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, FromAWS(nil))
	})

	t.Run("unclassified error is returned unchanged", func(t *testing.T) {
		err := errors.New("boom")
		assert.Same(t, err, FromAWS(err))
	})
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"object", NewObjectError("downloadFile", "b", "k", ErrObjectNotFound), "s3.downloadFile b/k: s3: object not found"},
		{"bucket", NewBucketError("list", "b", ErrBucketNotFound), "s3.list bucket b: s3: bucket not found"},
		{"bare", NewError("client initialization", errors.New("no region")), "s3.client initialization: no region"},
		{
			"with message",
			NewObjectError("uploadFile", "b", "k", ErrFileNotFound).WithMessage("a.txt"),
			"s3.uploadFile b/k: a.txt: s3: local file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Code(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.ErrorCode
	}{
		{"object not found", ErrObjectNotFound, codes.CodeNotFound},
		{"file not found", ErrFileNotFound, codes.CodeNotFound},
		{"invalid key", fmt.Errorf("%w: empty", ErrInvalidObjectKey), codes.CodeInvalidInput},
		{"access denied", ErrAccessDenied, codes.CodeForbidden},
		{"throttled", ErrTooManyRequests, codes.CodeRateLimit},
		{"deadline", context.DeadlineExceeded, codes.CodeTimeout},
		{"other", errors.New("boom"), codes.CodeStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewObjectError("op", "bucket", "key", tt.err)
			assert.Equal(t, tt.want, err.Code())
			assert.Equal(t, tt.want, codes.CodeOf(err))
		})
	}
}
