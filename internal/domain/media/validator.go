// Package media validates the photo batches submitted with pet
// registrations before any byte reaches object storage.
package media

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

const (
	// MaxFiles is the per-pet photo limit.
	MaxFiles = 4
	// MaxFileSizeBytes is the per-file size cap (10 MiB).
	MaxFileSizeBytes = 10 * 1024 * 1024
)

// allowedContentTypes is the declared-MIME whitelist for uploads.
var allowedContentTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/jpg":  {},
	"image/gif":  {},
}

// FailureKind identifies which rule rejected an upload batch.
type FailureKind string

const (
	MissingMedia         FailureKind = "missing_media"
	TooManyFiles         FailureKind = "too_many_files"
	FileTooLarge         FailureKind = "file_too_large"
	UnsupportedMediaType FailureKind = "unsupported_media_type"
	DuplicateMedia       FailureKind = "duplicate_media"
)

// ValidationError reports the first rule violated by a batch, with the
// offending filename for per-file rules. All kinds map to a bad request.
type ValidationError struct {
	Kind     FailureKind
	Filename string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingMedia:
		return "at least one image is required"
	case TooManyFiles:
		return fmt.Sprintf("each pet has a limit of %d images", MaxFiles)
	case FileTooLarge:
		return fmt.Sprintf("image file %s is too big", e.Filename)
	case UnsupportedMediaType:
		return fmt.Sprintf("invalid file type: %s", e.Filename)
	case DuplicateMedia:
		return fmt.Sprintf("duplicate file detected: %s", e.Filename)
	default:
		return "invalid upload"
	}
}

// batchRule checks a property of the whole candidate sequence.
type batchRule func(candidates []UploadCandidate) *ValidationError

// fileRule checks one candidate; rules run in submission order.
type fileRule func(c *UploadCandidate) *ValidationError

// Validator runs the upload rules as an ordered pipeline, stopping at the
// first violation. Validation is pure: no storage is touched.
type Validator struct{}

// NewValidator creates a media Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate applies batch rules, then per-file rules in submission order, and
// returns the accepted candidates in the same order or the first violation.
func (v *Validator) Validate(candidates []UploadCandidate) ([]UploadCandidate, error) {
	batchRules := []batchRule{checkNotEmpty, checkCount}
	fileRules := []fileRule{checkFileSize, checkContentType, newDigestRule()}

	for _, rule := range batchRules {
		if ferr := rule(candidates); ferr != nil {
			return nil, ferr
		}
	}
	for i := range candidates {
		for _, rule := range fileRules {
			if ferr := rule(&candidates[i]); ferr != nil {
				return nil, ferr
			}
		}
	}
	return candidates, nil
}

func checkNotEmpty(candidates []UploadCandidate) *ValidationError {
	if len(candidates) == 0 {
		return &ValidationError{Kind: MissingMedia}
	}
	return nil
}

func checkCount(candidates []UploadCandidate) *ValidationError {
	if len(candidates) > MaxFiles {
		return &ValidationError{Kind: TooManyFiles}
	}
	return nil
}

func checkFileSize(c *UploadCandidate) *ValidationError {
	if c.Size > MaxFileSizeBytes {
		return &ValidationError{Kind: FileTooLarge, Filename: c.Filename}
	}
	return nil
}

func checkContentType(c *UploadCandidate) *ValidationError {
	if _, ok := allowedContentTypes[c.ContentType]; !ok {
		return &ValidationError{Kind: UnsupportedMediaType, Filename: c.Filename}
	}
	return nil
}

// newDigestRule rejects candidates whose byte content was already seen
// earlier in the same batch, regardless of filename.
func newDigestRule() fileRule {
	seen := make(map[string]struct{})
	return func(c *UploadCandidate) *ValidationError {
		digest := ContentDigest(c.Content)
		if _, dup := seen[digest]; dup {
			return &ValidationError{Kind: DuplicateMedia, Filename: c.Filename}
		}
		seen[digest] = struct{}{}
		return nil
	}
}

// ContentDigest returns the hex MD5 of the file bytes.
func ContentDigest(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}
