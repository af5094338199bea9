package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidPath = errors.New("invalid file path")
	ErrNoSuchFile  = errors.New("file not found")
)

// LocalStore keeps uploaded artifacts on disk under Dir and hands out URLs
// that resolve through the file-serving endpoint.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{Dir: abs, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Resolve maps a stored name onto an absolute path inside Dir.
func (s *LocalStore) Resolve(name string) (string, error) {
	clean := filepath.Clean(name)
	if name == "" || clean != name || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.Dir, clean)
	if !strings.HasPrefix(full, s.Dir+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

// Put writes data at name, replacing any previous object, and returns its public URL.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := s.Resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp object: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return "", fmt.Errorf("store object: %w", err)
	}
	return s.PublicURL(name), nil
}

// Open returns the stored file for reading.
func (s *LocalStore) Open(name string) (*os.File, error) {
	full, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(full)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, ErrNoSuchFile
	}
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (s *LocalStore) PublicURL(name string) string {
	return s.BaseURL + "/api/get-file?file=" + url.QueryEscape(name)
}
