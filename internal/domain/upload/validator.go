// Package upload pre-flight checks attachment files before they are sent.
// The checks are advisory gates: callers may bypass them entirely (the CLI
// exposes a force flag for exactly that), and nothing here looks at file
// contents beyond a stat call.
package upload

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Declared limits and expected media types per send mode.
const (
	PhotoSizeLimit = 5 * 1024 * 1024
	VideoSizeLimit = 20 * 1024 * 1024

	PhotoMediaType = "image/jpeg"
	VideoMediaType = "video/mp4"
)

// Validation failure kinds, matchable with errors.Is.
var (
	ErrTooLarge     = errors.New("file is too big for upload")
	ErrTypeMismatch = errors.New("unexpected media type")
)

// Check verifies that the file at path fits under the size limit and that
// its extension-guessed media type equals expectedType. It returns nil when
// both checks pass, an error wrapping ErrTooLarge or ErrTypeMismatch when
// one fails, and a plain filesystem error when the file cannot be stat'ed.
func Check(expectedType, path string, limit int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat upload file: %w", err)
	}

	if info.Size() > limit {
		return fmt.Errorf("%w (%d MB), limit is %d MB",
			ErrTooLarge, info.Size()/(1024*1024), limit/(1024*1024))
	}

	if actual := guessMediaType(path); actual != expectedType {
		return fmt.Errorf("%w: file should have type %q, found %q",
			ErrTypeMismatch, expectedType, actual)
	}

	return nil
}

// guessMediaType resolves the media type from the filename extension alone,
// with any charset parameter stripped. Content sniffing is deliberately not
// performed.
func guessMediaType(path string) string {
	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if base, _, found := strings.Cut(mediaType, ";"); found {
		return strings.TrimSpace(base)
	}
	return mediaType
}
