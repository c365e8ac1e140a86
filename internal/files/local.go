// Package files stores task attachments on the local filesystem.
package files

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidLocator is returned for locators this store did not issue.
var ErrInvalidLocator = errors.New("invalid file locator")

// LocalStore writes files into a single directory and addresses them by URL
// path under prefix.
type LocalStore struct {
	dir    string
	prefix string
}

// NewLocalStore creates dir if needed. prefix is the URL path files are
// served under, e.g. "/files".
func NewLocalStore(dir, prefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating files dir: %w", err)
	}
	return &LocalStore{dir: dir, prefix: "/" + strings.Trim(prefix, "/")}, nil
}

// Store writes data under a unique name derived from name and returns its
// locator. An 8 hex character suffix goes before the extension.
func (s *LocalStore) Store(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	filename := uniqueName(name)
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	return s.prefix + "/" + filename, nil
}

// Exists reports whether the file behind locator is present.
func (s *LocalStore) Exists(_ context.Context, locator string) (bool, error) {
	path, err := s.path(locator)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", locator, err)
	}
	return true, nil
}

// Delete removes the file behind locator. Missing files are not an error.
func (s *LocalStore) Delete(_ context.Context, locator string) error {
	path, err := s.path(locator)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", locator, err)
	}
	return nil
}

// Prefix is the URL path files are served under.
func (s *LocalStore) Prefix() string { return s.prefix }

// Handler serves stored files; mount it at Prefix.
func (s *LocalStore) Handler() http.Handler {
	return http.StripPrefix(s.prefix, http.FileServer(http.Dir(s.dir)))
}

func (s *LocalStore) path(locator string) (string, error) {
	name, ok := strings.CutPrefix(locator, s.prefix+"/")
	if !ok || name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocator, locator)
	}
	return filepath.Join(s.dir, name), nil
}

func uniqueName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "file"
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "file"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return stem + "-" + suffix + ext
}
