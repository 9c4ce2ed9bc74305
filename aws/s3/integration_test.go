//go:build integration

package s3_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdks3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/s3types"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/testutil"
)

type bucketEnv struct {
	cfg      aws.Config
	endpoint string
}

func (e bucketEnv) client(t *testing.T, opts ...s3types.Option) *s3.Client {
	t.Helper()
	opts = append([]s3types.Option{
		s3.WithAWSConfig(&e.cfg),
		s3.WithEndpoint(e.endpoint),
		s3.WithForcePathStyle(true),
	}, opts...)
	client, err := s3.New(context.Background(), opts...)
	require.NoError(t, err)
	return client
}

func setupBucket(t *testing.T) (bucketEnv, string) {
	t.Helper()
	ctx := context.Background()

	container := testutil.SetupLocalStack(t)
	cfg, err := container.AWSConfig(ctx)
	require.NoError(t, err)

	bucket := testutil.UniqueName("integration")
	raw := sdks3.NewFromConfig(cfg, func(o *sdks3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(container.Endpoint())
	})
	_, err = raw.CreateBucket(ctx, &sdks3.CreateBucketInput{Bucket: aws.String(bucket)})
	require.NoError(t, err, "Failed to create test bucket")

	return bucketEnv{cfg: cfg, endpoint: container.Endpoint()}, bucket
}

// TestIntegrationUploadDownload tests upload and download operations against LocalStack.
func TestIntegrationUploadDownload(t *testing.T) {
	ctx := context.Background()
	env, bucket := setupBucket(t)
	client := env.client(t)

	t.Run("empty bucket", func(t *testing.T) {
		page, err := client.List(ctx, bucket, "")
		require.NoError(t, err)
		assert.Empty(t, page.Objects)
		assert.False(t, page.IsTruncated)
	})

	t.Run("put and get bytes", func(t *testing.T) {
		err := client.Put(ctx, bucket, "api-responses/post.json", []byte(`{"id":1}`))
		require.NoError(t, err)

		data, err := client.Get(ctx, bucket, "api-responses/post.json")
		require.NoError(t, err)
		assert.Equal(t, `{"id":1}`, string(data))
	})

	t.Run("upload and download file", func(t *testing.T) {
		testData := bytes.Repeat([]byte("0123456789"), 10*1024)

		tempDir := t.TempDir()
		src := filepath.Join(tempDir, "upload.bin")
		require.NoError(t, os.WriteFile(src, testData, 0o644))

		_, err := client.UploadFile(ctx, bucket, "files/upload.bin", src)
		require.NoError(t, err)

		dst := filepath.Join(tempDir, "download.bin")
		result, err := client.DownloadFile(ctx, bucket, "files/upload.bin", dst)
		require.NoError(t, err)
		assert.Equal(t, int64(len(testData)), result.Size)

		downloaded, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, testData, downloaded)
	})

	t.Run("download missing object", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "missing.bin")
		_, err := client.DownloadFile(ctx, bucket, "does/not/exist", dst)
		require.Error(t, err)
		assert.True(t, errors.IsObjectNotFound(err))
		assert.NoFileExists(t, dst)
	})
}

// TestIntegrationMultipartUpload tests a multipart upload against LocalStack.
func TestIntegrationMultipartUpload(t *testing.T) {
	ctx := context.Background()
	env, bucket := setupBucket(t)
	client := env.client(t)

	testData := bytes.Repeat([]byte("x"), int(s3types.MinPartSize)+1024)
	src := filepath.Join(t.TempDir(), "big.bin")
	require.NoError(t, os.WriteFile(src, testData, 0o644))

	result, err := client.UploadFile(ctx, bucket, "big.bin", src, s3.WithUploadPartSize(s3types.MinPartSize))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Parts, "file is below the default threshold")

	multipart := env.client(t,
		s3.WithMultipartThreshold(s3types.MinPartSize),
		s3.WithPartSize(s3types.MinPartSize),
	)

	result, err = multipart.UploadFile(ctx, bucket, "big-multipart.bin", src)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Parts)

	data, err := multipart.Get(ctx, bucket, "big-multipart.bin")
	require.NoError(t, err)
	assert.Equal(t, len(testData), len(data))
}

// TestIntegrationListOperations tests paginated listing against LocalStack.
func TestIntegrationListOperations(t *testing.T) {
	ctx := context.Background()
	env, bucket := setupBucket(t)
	client := env.client(t)

	const objectCount = 25
	for i := 0; i < objectCount; i++ {
		key := fmt.Sprintf("test-object-%03d.txt", i)
		require.NoError(t, client.Put(ctx, bucket, key, []byte(fmt.Sprintf("content-%d", i))))
	}

	page, err := client.List(ctx, bucket, "", s3.WithMaxKeys(10))
	require.NoError(t, err)
	assert.Len(t, page.Objects, 10)
	assert.True(t, page.IsTruncated)

	var seen int
	err = client.Walk(ctx, bucket, "test-object-", func(obj s3types.Object) error {
		seen++
		return nil
	}, s3.WithMaxKeys(10))
	require.NoError(t, err)
	assert.Equal(t, objectCount, seen)
}
