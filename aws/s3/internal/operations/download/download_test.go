package download

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs/billy"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs/fstest"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/testutil"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
func (failingReader) Close() error { return nil }

// recordingFS records the directories passed to MkdirAll.
type recordingFS struct {
	fs.Filesystem
	dirs []string
}

func (r *recordingFS) MkdirAll(path string, perm os.FileMode) error {
	r.dirs = append(r.dirs, path)
	return r.Filesystem.MkdirAll(path, perm)
}

func TestDownloader_Download(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		mockFunc func(*testutil.MockS3Client)
		want     string
		wantErr  error
	}{
		{
			name: "streams body",
			mockFunc: func(m *testutil.MockS3Client) {
				m.GetObjectFunc = func(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
					assert.Equal(t, "test-bucket", aws.ToString(input.Bucket))
					assert.Equal(t, "test-key", aws.ToString(input.Key))
					assert.Nil(t, input.Range)
					return &s3.GetObjectOutput{Body: testutil.Body("Hello, World!"), ETag: aws.String("etag")}, nil
				}
			},
			want: "Hello, World!",
		},
		{
			name:   "range request",
			config: &Config{RangeSpec: "bytes=0-4"},
			mockFunc: func(m *testutil.MockS3Client) {
				m.GetObjectFunc = func(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
					assert.Equal(t, "bytes=0-4", aws.ToString(input.Range))
					return &s3.GetObjectOutput{Body: testutil.Body("Hello")}, nil
				}
			},
			want: "Hello",
		},
		{
			name: "typed not found",
			mockFunc: func(m *testutil.MockS3Client) {
				m.GetObjectFunc = func(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
					return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
				}
			},
			wantErr: s3errors.ErrObjectNotFound,
		},
		{
			name: "generic not found code",
			mockFunc: func(m *testutil.MockS3Client) {
				m.GetObjectFunc = func(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
					return nil, testutil.APIError("NotFound", "Not Found")
				}
			},
			wantErr: s3errors.ErrObjectNotFound,
		},
		{
			name: "missing bucket",
			mockFunc: func(m *testutil.MockS3Client) {
				m.GetObjectFunc = func(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
					return nil, &types.NoSuchBucket{Message: aws.String("The specified bucket does not exist")}
				}
			},
			wantErr: s3errors.ErrBucketNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &testutil.MockS3Client{}
			tt.mockFunc(mock)

			var buf bytes.Buffer
			result, err := New(mock).Download(context.Background(), "test-bucket", "test-key", &buf, tt.config)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, int64(len(tt.want)), result.Size)
			assert.Equal(t, "test-key", result.Key)
		})
	}
}

func TestDownloader_DownloadFile(t *testing.T) {
	t.Run("writes file", func(t *testing.T) {
		fsys := billy.NewInMemoryFS()
		mock := &testutil.MockS3Client{
			GetObjectFunc: func(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: testutil.Body("a,b,c\n1,2,3\n"), ETag: aws.String("etag")}, nil
			},
		}

		result, err := New(mock).DownloadFile(context.Background(), "test-bucket", "data.csv", "/out/data.csv", fsys, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(12), result.Size)
		assert.Equal(t, "etag", result.ETag)

		data, err := fstest.ReadFile(fsys, "/out/data.csv")
		require.NoError(t, err)
		assert.Equal(t, "a,b,c\n1,2,3\n", string(data))
	})

	t.Run("creates parent directories", func(t *testing.T) {
		fsys := &recordingFS{Filesystem: billy.NewOSFS(t.TempDir())}
		mock := &testutil.MockS3Client{
			GetObjectFunc: func(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: testutil.Body("x")}, nil
			},
		}

		_, err := New(mock).DownloadFile(context.Background(), "test-bucket", "data.csv", "exports/2024/data.csv", fsys, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"exports/2024"}, fsys.dirs)

		data, err := fstest.ReadFile(fsys, "exports/2024/data.csv")
		require.NoError(t, err)
		assert.Equal(t, "x", string(data))
	})

	t.Run("missing object creates no file", func(t *testing.T) {
		fsys := &recordingFS{Filesystem: billy.NewInMemoryFS()}
		mock := &testutil.MockS3Client{
			GetObjectFunc: func(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return nil, &types.NoSuchKey{}
			},
		}

		_, err := New(mock).DownloadFile(context.Background(), "test-bucket", "missing.csv", "/missing.csv", fsys, nil)
		require.Error(t, err)
		assert.True(t, s3errors.IsObjectNotFound(err))

		exists, err := fstest.Exists(fsys, "/missing.csv")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Empty(t, fsys.dirs)
	})

	t.Run("failed transfer removes partial file", func(t *testing.T) {
		fsys := billy.NewInMemoryFS()
		mock := &testutil.MockS3Client{
			GetObjectFunc: func(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: failingReader{}}, nil
			},
		}

		_, err := New(mock).DownloadFile(context.Background(), "test-bucket", "data.csv", "/data.csv", fsys, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")

		exists, err := fstest.Exists(fsys, "/data.csv")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
