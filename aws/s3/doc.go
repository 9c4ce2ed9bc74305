// Package s3 provides a bucket client built on AWS SDK v2 for listing,
// uploading and downloading objects.
//
// The client validates bucket names and object keys before any request is
// sent, reads and writes local files through an fs.Filesystem so that tests
// can run against memory, and reports failures as *errors.Error values that
// wrap a sentinel such as ErrObjectNotFound or ErrFileNotFound.
//
// Key features:
//   - Zero-configuration usage with the AWS credential chain
//   - Functional options for region, endpoint, retries and part size
//   - Automatic multipart upload for files of 100MiB or more
//   - Paginated listing through Walk
//   - Content type detection on upload
//
// Example usage:
//
//	client, err := s3.New(ctx, s3.WithRegion("eu-west-1"))
//	if err != nil {
//	    return err
//	}
//
//	// Upload a file
//	result, err := client.UploadFile(ctx, "my-bucket", "path/file.txt", "/local/file.txt")
//	if err != nil {
//	    return err
//	}
package s3
