package media

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(filename, contentType string, content []byte) UploadCandidate {
	return UploadCandidate{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     content,
	}
}

func TestValidate_EmptyBatch(t *testing.T) {
	v := NewValidator()

	for _, batch := range [][]UploadCandidate{nil, {}} {
		_, err := v.Validate(batch)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MissingMedia, verr.Kind)
	}
}

func TestValidate_TooManyFiles(t *testing.T) {
	v := NewValidator()

	batch := make([]UploadCandidate, MaxFiles+1)
	for i := range batch {
		batch[i] = candidate("img.png", "image/png", []byte{byte(i)})
	}

	_, err := v.Validate(batch)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, TooManyFiles, verr.Kind)
}

func TestValidate_CountRuleWinsOverFileRules(t *testing.T) {
	v := NewValidator()

	// Five files, all individually invalid: the batch rule must fire first.
	batch := make([]UploadCandidate, MaxFiles+1)
	for i := range batch {
		batch[i] = candidate("doc.pdf", "application/pdf", []byte{byte(i)})
	}

	_, err := v.Validate(batch)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, TooManyFiles, verr.Kind)
}

func TestValidate_FileTooLarge(t *testing.T) {
	v := NewValidator()

	big := candidate("huge.png", "image/png", []byte("x"))
	big.Size = MaxFileSizeBytes + 1

	_, err := v.Validate([]UploadCandidate{big})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FileTooLarge, verr.Kind)
	assert.Equal(t, "huge.png", verr.Filename)
}

func TestValidate_ExactSizeLimitAccepted(t *testing.T) {
	v := NewValidator()

	c := candidate("edge.png", "image/png", []byte("x"))
	c.Size = MaxFileSizeBytes

	accepted, err := v.Validate([]UploadCandidate{c})
	require.NoError(t, err)
	assert.Len(t, accepted, 1)
}

func TestValidate_UnsupportedContentType(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name        string
		contentType string
		wantErr     bool
	}{
		{"png", "image/png", false},
		{"jpeg", "image/jpeg", false},
		{"jpg", "image/jpg", false},
		{"gif", "image/gif", false},
		{"webp", "image/webp", true},
		{"pdf", "application/pdf", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate([]UploadCandidate{
				candidate("file."+tt.name, tt.contentType, []byte(tt.name)),
			})
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, UnsupportedMediaType, verr.Kind)
				assert.Equal(t, "file."+tt.name, verr.Filename)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_DuplicateContentRegardlessOfFilename(t *testing.T) {
	v := NewValidator()

	content := []byte("same picture bytes")
	_, err := v.Validate([]UploadCandidate{
		candidate("first.png", "image/png", content),
		candidate("second.jpg", "image/jpeg", content),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, DuplicateMedia, verr.Kind)
	assert.Equal(t, "second.jpg", verr.Filename)
}

func TestValidate_SameFilenameDifferentContentAccepted(t *testing.T) {
	v := NewValidator()

	accepted, err := v.Validate([]UploadCandidate{
		candidate("photo.png", "image/png", []byte("one")),
		candidate("photo.png", "image/png", []byte("two")),
	})
	require.NoError(t, err)
	assert.Len(t, accepted, 2)
}

func TestValidate_FirstViolationInSubmissionOrderWins(t *testing.T) {
	v := NewValidator()

	// The bad MIME type comes before the duplicate; it must be the one
	// reported.
	content := []byte("payload")
	_, err := v.Validate([]UploadCandidate{
		candidate("ok.png", "image/png", content),
		candidate("bad.pdf", "application/pdf", []byte("other")),
		candidate("dup.png", "image/png", content),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, UnsupportedMediaType, verr.Kind)
	assert.Equal(t, "bad.pdf", verr.Filename)
}

func TestValidate_PreservesSubmissionOrder(t *testing.T) {
	v := NewValidator()

	batch := []UploadCandidate{
		candidate("a.png", "image/png", []byte("aaa")),
		candidate("b.jpg", "image/jpeg", []byte("bbb")),
		candidate("c.gif", "image/gif", []byte("ccc")),
		candidate("d.png", "image/png", []byte("ddd")),
	}

	accepted, err := v.Validate(batch)
	require.NoError(t, err)
	require.Len(t, accepted, 4)
	for i := range batch {
		assert.Equal(t, batch[i].Filename, accepted[i].Filename)
		assert.True(t, bytes.Equal(batch[i].Content, accepted[i].Content))
	}
}

func TestContentDigest_Deterministic(t *testing.T) {
	assert.Equal(t, ContentDigest([]byte("abc")), ContentDigest([]byte("abc")))
	assert.NotEqual(t, ContentDigest([]byte("abc")), ContentDigest([]byte("abd")))
	assert.Len(t, ContentDigest([]byte("abc")), 32)
}
