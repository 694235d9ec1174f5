// Package media fetches and validates the image files recognition runs on.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// DefaultMaxImageBytes is the largest image accepted for recognition
	DefaultMaxImageBytes int64 = 10 * 1024 * 1024
	// DefaultDownloadTimeout bounds a single image download
	DefaultDownloadTimeout = 30 * time.Second
)

// Media errors
var (
	// ErrMaxSizeExceeded is returned when an image is larger than the limit
	ErrMaxSizeExceeded = errors.New("image exceeds size limit")
	// ErrUnsupportedFormat is returned for anything that is not a JPEG image
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Downloader fetches remote images into a local working directory
type Downloader struct {
	client   *http.Client
	dir      string
	maxBytes int64
}

// NewDownloader creates a Downloader writing into dir. An empty dir falls
// back to the system temp directory, a non-positive maxBytes falls back to
// DefaultMaxImageBytes.
func NewDownloader(dir string, maxBytes int64) (*Downloader, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download directory %s: %w", dir, err)
	}
	return &Downloader{
		client:   &http.Client{Timeout: DefaultDownloadTimeout},
		dir:      dir,
		maxBytes: maxBytes,
	}, nil
}

// FetchJPEG downloads the image at url into the working directory, enforcing
// the size limit and verifying the content really is a JPEG. Callers must
// invoke the returned cleanup function when done with the file.
func (d *Downloader) FetchJPEG(ctx context.Context, url string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("image download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("image download failed: unexpected status %d", resp.StatusCode)
	}

	path := filepath.Join(d.dir, uuid.NewString()+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create image file: %w", err)
	}
	cleanup := func() { _ = os.Remove(path) }

	// Read one byte past the limit so an oversized body is detectable
	lr := &io.LimitedReader{R: resp.Body, N: d.maxBytes + 1}
	written, err := io.Copy(f, lr)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to save image: %w", err)
	}
	if written > d.maxBytes {
		cleanup()
		return "", nil, fmt.Errorf("%w: limit is %d bytes", ErrMaxSizeExceeded, d.maxBytes)
	}

	if err := ValidateJPEG(path); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

// ValidateJPEG checks that the file at path contains a JPEG image. The face
// recognizer only decodes JPEG, so everything else is rejected up front.
func ValidateJPEG(path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to detect image type: %w", err)
	}
	if !mt.Is("image/jpeg") {
		return fmt.Errorf("%w: got %s", ErrUnsupportedFormat, mt.String())
	}
	return nil
}
