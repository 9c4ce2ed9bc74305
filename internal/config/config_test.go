package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
)

// isolate runs the test in an empty directory so no .env file is picked up.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, name := range []string{
		"AWS_REGION", "AWS_ENDPOINT_URL", "AWS_MAX_RETRIES", "LOG_LEVEL", "LOG_FORMAT",
		"TABLE_NAME", "S3_BUCKET_NAME", "S3_FORCE_PATH_STYLE", "API_URL", "FETCH_TIMEOUT",
		"API_TOKEN_SECRET_ID", "API_TOKEN_SECRET_KEY", "SECRET_CACHE_TTL", "ARCHIVE_BUCKET", "ARCHIVE_PREFIX",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadUserTable_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadUserTable()
	require.NoError(t, err)
	assert.Equal(t, "Users", cfg.TableName)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.Region)
	assert.Empty(t, cfg.Endpoint)
}

func TestLoadS3Files(t *testing.T) {
	isolate(t)
	t.Setenv("S3_BUCKET_NAME", PlaceholderBucket)
	t.Setenv("S3_FORCE_PATH_STYLE", "true")
	t.Setenv("AWS_ENDPOINT_URL", "http://localhost:4566")

	cfg, err := LoadS3Files()
	require.NoError(t, err)
	assert.True(t, cfg.IsPlaceholder())
	assert.True(t, cfg.ForcePathStyle)
	assert.Equal(t, "http://localhost:4566", cfg.Endpoint)
}

func TestLoadS3Files_DefaultBucket(t *testing.T) {
	isolate(t)

	cfg, err := LoadS3Files()
	require.NoError(t, err)
	assert.Equal(t, "my-unique-data-bucket-1234-5", cfg.Bucket)
	assert.False(t, cfg.IsPlaceholder())
}

func TestLoadLambda_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadLambda()
	require.NoError(t, err)
	assert.Equal(t, "https://jsonplaceholder.typicode.com/posts/1", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SecretCacheTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "api-responses/", cfg.ArchivePrefix)
	assert.Empty(t, cfg.ArchiveBucket)
	assert.Empty(t, cfg.TokenSecretID)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("TABLE_NAME=FromDotEnv\nAWS_REGION=eu-west-2\n"), 0o600))

	cfg, err := LoadUserTable()
	require.NoError(t, err)
	assert.Equal(t, "FromDotEnv", cfg.TableName)
	assert.Equal(t, "eu-west-2", cfg.Region)
}

func TestLoad_EnvironmentOverridesDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("TABLE_NAME=FromDotEnv\n"), 0o600))
	t.Setenv("TABLE_NAME", "FromEnv")

	cfg, err := LoadUserTable()
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.TableName)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		load func() error
	}{
		{
			name: "negative retries",
			env:  map[string]string{"AWS_MAX_RETRIES": "-1"},
			load: func() error { _, err := LoadUserTable(); return err },
		},
		{
			name: "unparsable retries",
			env:  map[string]string{"AWS_MAX_RETRIES": "many"},
			load: func() error { _, err := LoadUserTable(); return err },
		},
		{
			name: "bad log level",
			env:  map[string]string{"LOG_LEVEL": "verbose"},
			load: func() error { _, err := LoadS3Files(); return err },
		},
		{
			name: "bad endpoint",
			env:  map[string]string{"AWS_ENDPOINT_URL": "localhost:4566"},
			load: func() error { _, err := LoadS3Files(); return err },
		},
		{
			name: "relative api url",
			env:  map[string]string{"API_URL": "/posts/1"},
			load: func() error { _, err := LoadLambda(); return err },
		},
		{
			name: "zero fetch timeout",
			env:  map[string]string{"FETCH_TIMEOUT": "0s"},
			load: func() error { _, err := LoadLambda(); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := tt.load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidConfig, errors.CodeOf(err))
			assert.Equal(t, errors.ExitUsage, errors.ExitCode(err))
		})
	}
}
