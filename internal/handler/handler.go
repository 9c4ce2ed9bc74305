// Package handler implements the S3-triggered fetch function: it reads the
// uploaded object's location from the event, fetches a JSON document from a
// remote API, logs it and optionally archives it next to the source object.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/s3types"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/fetch"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/services/aws/secrets"
)

// Response bodies.
const (
	MsgSuccess  = "Successfully processed S3 event and fetched API data."
	MsgBadEvent = "Error: Could not parse S3 event information."
	msgFetch    = "Error fetching data from API"
	msgToken    = "Error reading API token"
	msgArchive  = "Error archiving API data"
)

// Response is the envelope returned to the Lambda runtime. Body holds a
// JSON-encoded string.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Fetcher retrieves a JSON document.
type Fetcher interface {
	GetJSON(ctx context.Context, url string, opts ...fetch.RequestOption) (json.RawMessage, error)
}

// SecretSource returns secret values, cached across invocations.
type SecretSource interface {
	GetSecretCached(ctx context.Context, name string) (string, error)
}

// Archiver stores a small object.
type Archiver interface {
	Put(ctx context.Context, bucket, key string, data []byte, opts ...s3types.UploadOption) error
}

var (
	_ Fetcher      = (*fetch.Client)(nil)
	_ SecretSource = (*secrets.Client)(nil)
	_ Archiver     = (*s3.Client)(nil)
)

// Handler processes S3 events. It holds no per-invocation state and is safe
// to reuse across warm invocations.
type Handler struct {
	fetcher Fetcher
	apiURL  string
	logger  *slog.Logger

	secrets   SecretSource
	secretID  string
	secretKey string

	archive       Archiver
	archiveBucket string
	archivePrefix string
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithAPIToken sends a bearer token read from the secret id. When key is
// not empty the secret is a JSON object and the token is its key field.
func WithAPIToken(src SecretSource, id, key string) Option {
	return func(h *Handler) {
		h.secrets = src
		h.secretID = id
		h.secretKey = key
	}
}

// WithArchive writes every fetched payload to bucket under prefix.
func WithArchive(a Archiver, bucket, prefix string) Option {
	return func(h *Handler) {
		h.archive = a
		h.archiveBucket = bucket
		h.archivePrefix = prefix
	}
}

// New returns a Handler that fetches apiURL with f.
func New(f Fetcher, apiURL string, opts ...Option) *Handler {
	h := &Handler{
		fetcher: f,
		apiURL:  apiURL,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes one S3 event. Failures are reported through the
// response status code; the returned error is always nil so that the
// runtime does not retry the event.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	requestID := requestID(ctx)
	logger := h.logger.With("request_id", requestID)
	logger.InfoContext(ctx, "Lambda function triggered by S3 event.")

	bucket, key, err := objectFromEvent(event)
	if err != nil {
		logger.ErrorContext(ctx, "Error parsing S3 event", "error", err, "records", len(event.Records))
		return respond(err), nil
	}
	logger.InfoContext(ctx, "File was uploaded to bucket.", "bucket", bucket, "key", key)

	data, err := h.fetch(ctx, logger, requestID)
	if err != nil {
		logger.ErrorContext(ctx, err.Error())
		return respond(err), nil
	}

	if h.archive != nil && h.archiveBucket != "" {
		dest := archiveKey(h.archivePrefix, key)
		if err := h.archive.Put(ctx, h.archiveBucket, dest, data, s3.WithContentType("application/json")); err != nil {
			err = errors.Wrap(err, errors.CodeStorage, msgArchive)
			logger.ErrorContext(ctx, err.Error())
			return respond(err), nil
		}
		logger.InfoContext(ctx, "Archived API data.", "bucket", h.archiveBucket, "key", dest)
	}

	return respond(nil), nil
}

func (h *Handler) fetch(ctx context.Context, logger *slog.Logger, requestID string) (json.RawMessage, error) {
	opts := []fetch.RequestOption{fetch.WithHeader("X-Request-Id", requestID)}

	if h.secrets != nil && h.secretID != "" {
		token, err := h.token(ctx)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUnauthorized, msgToken)
		}
		opts = append(opts, fetch.WithBearerToken(token))
	}

	logger.InfoContext(ctx, "Fetching data from API.", "url", h.apiURL)
	data, err := h.fetcher.GetJSON(ctx, h.apiURL, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeNetwork, msgFetch)
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, msgFetch)
	}
	logger.InfoContext(ctx, "Successfully fetched data from API.", "data", indented.String())

	return data, nil
}

func (h *Handler) token(ctx context.Context) (string, error) {
	value, err := h.secrets.GetSecretCached(ctx, h.secretID)
	if err != nil {
		return "", err
	}
	if h.secretKey == "" {
		return value, nil
	}
	return secrets.Field(value, h.secretKey)
}

// objectFromEvent returns the bucket and URL-decoded key of the first record.
func objectFromEvent(event events.S3Event) (string, string, error) {
	if len(event.Records) == 0 {
		return "", "", errors.New(errors.CodeInvalidInput, MsgBadEvent)
	}
	entity := event.Records[0].S3

	key := entity.Object.URLDecodedKey
	if key == "" {
		key = entity.Object.Key
	}
	if entity.Bucket.Name == "" || key == "" {
		return "", "", errors.New(errors.CodeInvalidInput, MsgBadEvent)
	}
	return entity.Bucket.Name, key, nil
}

func archiveKey(prefix, key string) string {
	return prefix + key + ".json"
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}

func respond(err error) Response {
	msg := MsgSuccess
	if err != nil {
		msg = err.Error()
	}
	return Response{StatusCode: errors.HTTPStatus(err), Body: encodeBody(msg)}
}

// encodeBody renders msg as a JSON string without HTML escaping.
func encodeBody(msg string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(msg)
	return strings.TrimSuffix(buf.String(), "\n")
}
