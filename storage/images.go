// Package storage keeps uploaded issue images on local disk. Issues store
// the returned path plus the detected content type.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"cityhelp-be/errs"
)

// DefaultMaxBytes is the upload size limit (5 MiB).
const DefaultMaxBytes int64 = 5 << 20

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Upload is an image received with a report, already read into memory.
type Upload struct {
	Data        []byte
	Filename    string
	ContentType string
}

// TooLarge is the validation error for uploads over maxBytes.
func TooLarge(maxBytes int64) error {
	return errs.Validation(fmt.Sprintf("Image exceeds the %d MB limit", maxBytes>>20))
}

// ReadUpload reads a multipart file, enforcing maxBytes and an image content type.
func ReadUpload(fh *multipart.FileHeader, maxBytes int64) (*Upload, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if fh.Size > maxBytes {
		return nil, TooLarge(maxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errs.Validation("Could not read uploaded image")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, errs.Validation("Could not read uploaded image")
	}
	if int64(len(data)) > maxBytes {
		return nil, TooLarge(maxBytes)
	}
	if len(data) == 0 {
		return nil, errs.Validation("Uploaded image is empty")
	}

	mt := mimetype.Detect(data)
	if !allowedTypes[mt.String()] {
		return nil, errs.Validation("Only JPEG, PNG, WebP or GIF images are accepted")
	}

	return &Upload{Data: data, Filename: filepath.Base(fh.Filename), ContentType: mt.String()}, nil
}

// LocalStore writes images under a single directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: filepath.Clean(dir)}, nil
}

// Save writes the upload under a random name and returns its path.
func (s *LocalStore) Save(_ context.Context, u *Upload) (string, error) {
	ext := mimetype.Detect(u.Data).Extension()
	path := filepath.Join(s.dir, uuid.NewString()+ext)
	if err := os.WriteFile(path, u.Data, 0o644); err != nil {
		return "", errs.Persistence("store image", err)
	}
	return path, nil
}

// Remove deletes a previously saved image. Missing files are not an error.
func (s *LocalStore) Remove(path string) error {
	if !s.owns(path) {
		return fmt.Errorf("path %s is outside the upload dir", path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Open returns a reader for a saved image.
func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	if !s.owns(path) {
		return nil, errs.NotFound("Image not found")
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.NotFound("Image not found")
	}
	return f, err
}

func (s *LocalStore) owns(path string) bool {
	rel, err := filepath.Rel(s.dir, filepath.Clean(path))
	return err == nil && rel != "." && !strings.HasPrefix(rel, "..")
}

// BytesReader adapts an embedded image payload to the Open signature.
func BytesReader(data []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(data))
}
