package media

// UploadCandidate is one raw file submitted with a pet registration. It
// exists only for the duration of the registration call: accepted candidates
// are converted to stored URLs, rejected ones are discarded.
type UploadCandidate struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}
