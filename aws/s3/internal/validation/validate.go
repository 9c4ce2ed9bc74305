// Package validation checks bucket names, object keys, and upload metadata
// before any request is sent.
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/aws/s3/errors"
)

var mimePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-+.]*/[a-zA-Z0-9][a-zA-Z0-9\-+.]*(\s*;.*)?$`)

func invalidBucket(msg string) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidBucketName, msg)
}

func invalidKey(msg string) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidObjectKey, msg)
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidInput, msg)
}

// ValidateBucketName validates that a bucket name is DNS-compliant according to AWS S3 rules.
// Returns an error wrapping ErrInvalidBucketName if the bucket name is invalid.
func ValidateBucketName(bucket string) error {
	if bucket == "" {
		return invalidBucket("bucket name cannot be empty")
	}

	// Bucket names must be between 3 and 63 characters long
	if len(bucket) < 3 || len(bucket) > 63 {
		return invalidBucket("bucket name must be between 3 and 63 characters long")
	}

	for _, char := range bucket {
		if !isValidBucketChar(char) {
			return invalidBucket("bucket name can only contain lowercase letters, numbers, dots, and hyphens")
		}
	}

	first, last := bucket[0], bucket[len(bucket)-1]
	if first == '-' || first == '.' || last == '-' || last == '.' {
		return invalidBucket("bucket name cannot start or end with a hyphen or dot")
	}

	if isIPAddress(bucket) {
		return invalidBucket("bucket name cannot be formatted as an IP address")
	}

	if strings.Contains(bucket, "..") {
		return invalidBucket("bucket name cannot contain two adjacent periods")
	}

	return nil
}

// ValidateObjectKey checks the rules S3 itself enforces on a key: it must be
// non-empty, at most 1024 bytes and free of control characters. Reads and
// in-memory writes accept any such key, including "/rooted" or "a/../b".
func ValidateObjectKey(key string) error {
	if key == "" {
		return invalidKey("object key cannot be empty")
	}

	// S3 supports keys up to 1024 bytes
	if len(key) > 1024 {
		return invalidKey("object key cannot exceed 1024 characters")
	}

	if hasControlCharacters(key) {
		return invalidKey("object key cannot contain control characters")
	}

	return nil
}

// ValidateUploadKey applies ValidateObjectKey and additionally rejects keys
// that would escape the bucket root when mapped back to a local path.
func ValidateUploadKey(key string) error {
	if err := ValidateObjectKey(key); err != nil {
		return err
	}
	if hasPathTraversal(key) {
		return invalidKey("object key cannot contain path traversal sequences")
	}
	return nil
}

// ValidateMetadata validates metadata keys and values according to S3 rules.
func ValidateMetadata(metadata map[string]string) error {
	for key, value := range metadata {
		if err := validateMetadataKey(key); err != nil {
			return err
		}
		if err := validateMetadataValue(value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateContentType validates that a content type looks like a MIME type.
// An empty content type is allowed.
func ValidateContentType(contentType string) error {
	if contentType == "" {
		return nil
	}
	if !mimePattern.MatchString(contentType) {
		return invalidInput("content type must be a valid MIME type")
	}
	return nil
}

func isValidBucketChar(char rune) bool {
	return (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z') || char == '.' || char == '-'
}

// isIPAddress checks if a string is formatted as an IPv4 address
func isIPAddress(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		if part == "" {
			return false
		}
		num := 0
		for _, char := range part {
			if char < '0' || char > '9' {
				return false
			}
			num = num*10 + int(char-'0')
		}
		if num > 255 {
			return false
		}
	}

	return true
}

func hasPathTraversal(key string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(key), "/") {
		if segment == ".." {
			return true
		}
	}

	if strings.HasPrefix(key, "/") {
		return true
	}

	// Windows-style absolute paths
	if len(key) >= 3 && key[1] == ':' && (key[2] == '\\' || key[2] == '/') {
		return true
	}

	return false
}

func hasControlCharacters(key string) bool {
	for _, char := range key {
		if unicode.IsControl(char) {
			return true
		}
	}
	return false
}

func validateMetadataKey(key string) error {
	if key == "" {
		return invalidInput("metadata key cannot be empty")
	}

	if len(key) > 128 {
		return invalidInput("metadata key cannot exceed 128 characters")
	}

	for _, prefix := range []string{"aws:", "x-amz-", "x-amz:"} {
		if strings.HasPrefix(strings.ToLower(key), prefix) {
			return invalidInput(fmt.Sprintf("metadata key cannot start with reserved prefix: %s", prefix))
		}
	}

	for _, char := range key {
		if char <= 32 || char > 126 {
			return invalidInput("metadata key can only contain printable ASCII characters without spaces")
		}
	}

	return nil
}

func validateMetadataValue(value string) error {
	// S3 metadata values can be up to 2KB
	if len(value) > 2048 {
		return invalidInput("metadata value cannot exceed 2048 characters")
	}

	for _, char := range value {
		if !unicode.IsPrint(char) && char != '\t' {
			return invalidInput("metadata value can only contain printable characters")
		}
	}

	return nil
}
