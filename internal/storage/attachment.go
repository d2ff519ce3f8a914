// Package storage keeps at most one uploaded file per record on local disk,
// keyed by the original filename.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinkisoma/web-manager/internal/apperr"
)

type AttachmentStore struct {
	dir string
}

func NewAttachmentStore(dir string) (*AttachmentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to create attachment directory")
	}
	return &AttachmentStore{dir: dir}, nil
}

// Path resolves a stored filename to its on-disk location, rejecting names
// that would escape the attachment directory.
func (s *AttachmentStore) Path(name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// Store writes the upload under its original filename. An existing file of
// the same name is overwritten; replacing a different old file is the
// caller's job (save new, then delete old, then update the reference).
func (s *AttachmentStore) Store(name string, src io.Reader) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	dst, err := os.Create(path)
	if err != nil {
		return apperr.Wrap(apperr.KindStorage, err, "failed to save attachment")
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return apperr.Wrap(apperr.KindStorage, err, "failed to write attachment")
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return apperr.Wrap(apperr.KindStorage, err, "failed to write attachment")
	}
	return nil
}

// Open returns the stored file for reading.
func (s *AttachmentStore) Open(name string) (io.ReadCloser, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, apperr.New(apperr.KindNotFound, "attachment not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to open attachment")
	}
	return f, nil
}

// Remove deletes the stored file. Removing a missing file is not an error.
func (s *AttachmentStore) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return apperr.Wrap(apperr.KindStorage, err, "failed to delete attachment")
	}
	return nil
}

// Exists reports whether a file is stored under name.
func (s *AttachmentStore) Exists(name string) bool {
	path, err := s.Path(name)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(path)
	return statErr == nil
}

func validName(name string) error {
	if name == "" {
		return apperr.New(apperr.KindValidation, "attachment filename is empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || name == "." || name == ".." {
		return apperr.New(apperr.KindValidation, "invalid attachment filename")
	}
	return nil
}
