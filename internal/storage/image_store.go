// Package storage keeps uploaded product images on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ImageStore saves multipart uploads under Dir with collision-free names.
type ImageStore struct {
	Dir string
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{Dir: dir}
}

// Save writes the upload as "<uuid>_<sanitized name>" and returns that file name.
// Dir is created on first use.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.NewString() + "_" + SanitizeFilename(file.Filename)
	if err := fasthttp.SaveMultipartFile(file, filepath.Join(s.Dir, filename)); err != nil {
		return "", fmt.Errorf("save %s: %w", filename, err)
	}
	return filename, nil
}

// Remove deletes a stored image. A missing file is not an error.
func (s *ImageStore) Remove(filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.Base(filename)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SanitizeFilename strips directories and any character outside [A-Za-z0-9._-].
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "image"
	}
	return name
}
