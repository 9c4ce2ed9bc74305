// Package config loads program configuration from environment variables.
// A .env file in the working directory is read first for local development;
// variables already set in the environment take precedence over it.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/logging"
)

// PlaceholderBucket is the bucket name shipped in templates. s3files refuses
// to run against it.
const PlaceholderBucket = "your-unique-bucket-name-here"

// AWS holds settings shared by every AWS client. An empty Region defers to
// the SDK credential chain; an empty Endpoint uses the public AWS endpoint.
type AWS struct {
	Region     string `env:"AWS_REGION"`
	Endpoint   string `env:"AWS_ENDPOINT_URL"`
	MaxRetries int    `env:"AWS_MAX_RETRIES" envDefault:"3"`
}

// UserTable configures the usertable CLI.
type UserTable struct {
	AWS
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	TableName string `env:"TABLE_NAME" envDefault:"Users"`
}

// S3Files configures the s3files CLI.
type S3Files struct {
	AWS
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
	Bucket         string `env:"S3_BUCKET_NAME" envDefault:"my-unique-data-bucket-1234-5"`
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// IsPlaceholder reports whether the bucket still has its template value.
func (c *S3Files) IsPlaceholder() bool {
	return c.Bucket == PlaceholderBucket
}

// Lambda configures the fetch function. Logs default to JSON for CloudWatch.
type Lambda struct {
	AWS
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`
	APIURL         string        `env:"API_URL" envDefault:"https://jsonplaceholder.typicode.com/posts/1"`
	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	TokenSecretID  string        `env:"API_TOKEN_SECRET_ID"`
	TokenSecretKey string        `env:"API_TOKEN_SECRET_KEY"`
	SecretCacheTTL time.Duration `env:"SECRET_CACHE_TTL" envDefault:"5m"`
	ArchiveBucket  string        `env:"ARCHIVE_BUCKET"`
	ArchivePrefix  string        `env:"ARCHIVE_PREFIX" envDefault:"api-responses/"`
	ForcePathStyle bool          `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// LoadUserTable reads the usertable configuration.
func LoadUserTable() (*UserTable, error) {
	cfg := &UserTable{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	if err := validate(
		validateAWS(cfg.AWS),
		validateLogging(cfg.LogLevel, cfg.LogFormat),
		nonEmpty("TABLE_NAME", cfg.TableName),
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadS3Files reads the s3files configuration.
func LoadS3Files() (*S3Files, error) {
	cfg := &S3Files{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	if err := validate(
		validateAWS(cfg.AWS),
		validateLogging(cfg.LogLevel, cfg.LogFormat),
		nonEmpty("S3_BUCKET_NAME", cfg.Bucket),
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadLambda reads the function configuration.
func LoadLambda() (*Lambda, error) {
	cfg := &Lambda{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	if err := validate(
		validateAWS(cfg.AWS),
		validateLogging(cfg.LogLevel, cfg.LogFormat),
		validateURL("API_URL", cfg.APIURL),
		positive("FETCH_TIMEOUT", cfg.FetchTimeout),
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(cfg any) error {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "failed to parse config")
	}
	return nil
}

func validate(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.CodeInvalidConfig, fmt.Sprintf(format, args...))
}

func validateAWS(a AWS) error {
	if a.MaxRetries < 0 {
		return invalid("AWS_MAX_RETRIES must not be negative, got %d", a.MaxRetries)
	}
	if a.Endpoint != "" {
		return validateURL("AWS_ENDPOINT_URL", a.Endpoint)
	}
	return nil
}

func validateLogging(level, format string) error {
	if _, err := logging.ParseLevel(level); err != nil {
		return invalid("LOG_LEVEL: %v", err)
	}
	if _, err := logging.ParseFormat(format); err != nil {
		return invalid("LOG_FORMAT: %v", err)
	}
	return nil
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}

func nonEmpty(name, value string) error {
	if value == "" {
		return invalid("%s must not be empty", name)
	}
	return nil
}

func positive(name string, d time.Duration) error {
	if d <= 0 {
		return invalid("%s must be positive, got %s", name, d)
	}
	return nil
}
