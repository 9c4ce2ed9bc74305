// Package s3files implements the s3files command: list, upload and download
// objects of a single bucket.
package s3files

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3"
	s3errors "github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/s3types"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/internal/cli"
)

const (
	maxLimit = 1000

	msgUploadUsage   = "Error: Upload action requires a source file path."
	msgDownloadUsage = "Error: Download action requires an S3 object name (source) and a local file path (destination)."
)

// Bucket is the set of bucket operations the commands use.
type Bucket interface {
	List(ctx context.Context, bucket, prefix string, opts ...s3types.ListOption) (*s3types.ListResult, error)
	Walk(ctx context.Context, bucket, prefix string, fn func(s3types.Object) error, opts ...s3types.ListOption) error
	UploadFile(ctx context.Context, bucket, key, path string, opts ...s3types.UploadOption) (*s3types.UploadResult, error)
	DownloadFile(ctx context.Context, bucket, key, path string, opts ...s3types.DownloadOption) (*s3types.DownloadResult, error)
}

var _ Bucket = (*s3.Client)(nil)

// NewCommand returns the s3files root command operating on bucket.
func NewCommand(client Bucket, bucket string, logger *slog.Logger) *cobra.Command {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &runner{client: client, bucket: bucket, logger: logger}

	cmd := &cobra.Command{
		Use:   "s3files",
		Short: "AWS S3 File Management",
		Args:  cobra.NoArgs,
		RunE:  cli.RequireCommand,
	}
	cmd.AddCommand(
		newListCommand(r),
		&cobra.Command{
			Use:   "upload <source> [destination]",
			Short: "Upload a local file. The object name defaults to the source path.",
			Args:  cobra.MaximumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) < 1 {
					return usage(cmd.OutOrStdout(), msgUploadUsage)
				}
				key := ""
				if len(args) == 2 {
					key = args[1]
				}
				return r.upload(cmd.Context(), args[0], key)
			},
		},
		&cobra.Command{
			Use:   "download <source> <destination>",
			Short: "Download an object to a local file.",
			Args:  cobra.MaximumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) < 2 {
					return usage(cmd.OutOrStdout(), msgDownloadUsage)
				}
				return r.download(cmd.Context(), args[0], args[1])
			},
		},
	)
	return cmd
}

func newListCommand(r *runner) *cobra.Command {
	var (
		prefix string
		limit  int32
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the objects in the bucket.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 || limit > maxLimit {
				return fmt.Errorf("--limit must be between 1 and %d", maxLimit)
			}
			return r.list(cmd.Context(), cmd.OutOrStdout(), prefix, limit)
		},
	}

	f := cmd.Flags()
	f.StringVar(&prefix, "prefix", "", "Only list objects whose name starts with this prefix.")
	f.Int32Var(&limit, "limit", 0, fmt.Sprintf("Show at most this many objects (1-%d). All objects are listed when unset.", maxLimit))
	return cmd
}

// PrintPlaceholderBanner tells the user to configure a real bucket name.
func PrintPlaceholderBanner(w io.Writer) {
	line := strings.Repeat("!", 58)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "!!! PLEASE EDIT THE SCRIPT AND SET S3_BUCKET_NAME !!!")
	fmt.Fprintln(w, line)
}

type runner struct {
	client Bucket
	bucket string
	logger *slog.Logger
}

func (r *runner) list(ctx context.Context, out io.Writer, prefix string, limit int32) error {
	r.logger.InfoContext(ctx, "Listing files in bucket: "+r.bucket)

	show := func(obj s3types.Object) error {
		_, err := fmt.Fprintf(out, "- %s (Size: %d bytes)\n", obj.Key, obj.Size)
		return err
	}

	var (
		count     int
		truncated bool
		err       error
	)
	if limit > 0 {
		var page *s3types.ListResult
		page, err = r.client.List(ctx, r.bucket, prefix, s3.WithMaxKeys(limit))
		if err == nil {
			for _, obj := range page.Objects {
				if err = show(obj); err != nil {
					break
				}
			}
			count, truncated = len(page.Objects), page.IsTruncated
		}
	} else {
		err = r.client.Walk(ctx, r.bucket, prefix, func(obj s3types.Object) error {
			count++
			return show(obj)
		})
	}
	if err != nil {
		r.logger.ErrorContext(ctx, fmt.Sprintf("Could not list files in bucket %s: %v", r.bucket, err))
		return cli.Reported(err)
	}

	switch {
	case count == 0 && prefix == "":
		fmt.Fprintln(out, "Bucket is empty.")
	case count == 0:
		fmt.Fprintf(out, "No objects found with prefix: %s\n", prefix)
	case truncated:
		fmt.Fprintf(out, "More objects not shown; raise --limit or omit it to list all.\n")
	}
	return nil
}

func (r *runner) upload(ctx context.Context, source, key string) error {
	if key == "" {
		key = ObjectKey(source)
	}
	r.logger.InfoContext(ctx, fmt.Sprintf("Uploading %s to %s/%s...", source, r.bucket, key))

	if _, err := r.client.UploadFile(ctx, r.bucket, key, source); err != nil {
		if s3errors.IsFileNotFound(err) {
			r.logger.ErrorContext(ctx, "The file was not found: "+source)
		} else {
			r.logger.ErrorContext(ctx, fmt.Sprintf("Could not upload file: %v", err))
		}
		return cli.Reported(err)
	}

	r.logger.InfoContext(ctx, "Upload successful.")
	return nil
}

func (r *runner) download(ctx context.Context, key, dest string) error {
	r.logger.InfoContext(ctx, fmt.Sprintf("Downloading %s/%s to %s...", r.bucket, key, dest))

	if _, err := r.client.DownloadFile(ctx, r.bucket, key, dest); err != nil {
		if s3errors.IsObjectNotFound(err) {
			r.logger.ErrorContext(ctx, fmt.Sprintf("The object %s does not exist in bucket %s.", key, r.bucket))
		} else {
			r.logger.ErrorContext(ctx, fmt.Sprintf("Could not download file: %v", err))
		}
		return cli.Reported(err)
	}

	r.logger.InfoContext(ctx, "Download successful.")
	return nil
}

// ObjectKey derives an object key from a local path: separators become
// slashes and leading slashes are dropped. Paths that climb out of the
// working directory keep their ".." segments and are rejected on upload.
func ObjectKey(source string) string {
	return strings.TrimLeft(path.Clean(filepath.ToSlash(source)), "/")
}

func usage(w io.Writer, msg string) error {
	fmt.Fprintln(w, msg)
	return cli.Reported(errors.New(errors.CodeInvalidInput, msg))
}
