package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateWindow checks a crop window against a sequence of the given
// length: 0 <= start < end < length. An empty window would leave a record
// of length zero, so start == end is out of bounds too.
func ValidateWindow(start, end, length int) error {
	if start < 0 || end >= length {
		return New(ErrCodeOutOfBounds, "out-of-bound cropping: window (%d, %d) on sequence of length %d", start, end, length)
	}
	if start >= end {
		return New(ErrCodeOutOfBounds, "empty window: start %d is not before end %d", start, end)
	}
	return nil
}

// ValidateSequenceLength rejects non-positive sequence lengths.
func ValidateSequenceLength(length int) error {
	if length <= 0 {
		return New(ErrCodeInvalidInput, "sequence length must be positive, got %d", length)
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output path.
//
// The rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - No directory traversal after cleaning
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid control characters")
		}
	}

	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) && strings.HasPrefix(clean, "..") {
		return New(ErrCodeInvalidPath, "output path escapes the working directory: %s", path)
	}

	return nil
}
