// Package blobstore abstracts where uploaded media bytes live. The quota
// and metadata logic in the media service only sees this interface, so a
// managed object store can replace the disk implementation without touching
// domain code.
package blobstore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore writes and removes opaque blobs and answers with a public URL.
type BlobStore interface {
	// Put stores the blob under storedName and returns its public URL.
	Put(storedName string, r io.Reader) (string, error)
	// Remove deletes the blob. Removing a missing blob is not an error.
	Remove(storedName string) error
}

// DiskStore keeps blobs under a local directory and serves them from
// baseURL + "/media/".
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates the directory if needed.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if dir == "" {
		return nil, errors.New("media directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Put(storedName string, r io.Reader) (string, error) {
	if storedName == "" || strings.Contains(storedName, "/") || strings.Contains(storedName, "..") {
		return "", errors.New("invalid stored name")
	}
	path := filepath.Join(s.dir, storedName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return s.baseURL + "/media/" + storedName, nil
}

func (s *DiskStore) Remove(storedName string) error {
	if storedName == "" || strings.Contains(storedName, "/") || strings.Contains(storedName, "..") {
		return errors.New("invalid stored name")
	}
	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ BlobStore = (*DiskStore)(nil)
