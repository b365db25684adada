// Package cache persists the built hierarchy as a JSON document on disk.
//
// The document is written once at startup and read back, unchanged, on every data
// request. Writers take an exclusive lock on a sibling ".lock" file and replace the
// document atomically; readers take a shared lock when they can.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hierview/domain/hierarchy"
	"hierview/internal"
	"hierview/internal/errors"

	"github.com/gofrs/flock"
)

const lockRetryInterval = 50 * time.Millisecond

// Store reads and writes the cached document at a fixed path
type Store struct {
	path   string
	logger *internal.Logger
}

// NewStore creates a store for the document at path
func NewStore(path string, logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &Store{path: path, logger: logger.With("cache")}
}

// Path returns the document location
func (s *Store) Path() string {
	return s.path
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}

// Write serializes root and replaces any existing document
func (s *Store) Write(ctx context.Context, root *hierarchy.Node) error {
	data, err := json.Marshal(root)
	if err != nil {
		return errors.CacheError("failed to encode hierarchy", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.CacheError(fmt.Sprintf("failed to create cache directory %s", dir), err)
	}

	lock := flock.New(s.lockPath())
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return errors.CacheError("failed to acquire cache lock", err)
	}
	if !locked {
		return errors.CacheError("could not acquire cache lock", nil)
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.CacheError(fmt.Sprintf("cache location %s is not writable", s.path), err)
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, data); err != nil {
		os.Remove(tmpName)
		return errors.CacheError(fmt.Sprintf("failed to write %s", tmpName), err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return errors.CacheError(fmt.Sprintf("failed to set permissions on %s", tmpName), err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.CacheError(fmt.Sprintf("failed to replace %s", s.path), err)
	}

	s.logger.Infow("Cache written", "path", s.path, "bytes", len(data))
	return nil
}

func writeAndClose(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read loads and parses the document. A missing document is a NOT_FOUND error and a
// document that does not parse as a hierarchy is a CACHE_ERROR; neither is repaired.
func (s *Store) Read(ctx context.Context) (*hierarchy.Node, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, errors.NotFound("cache document " + s.path)
	}

	lock := flock.New(s.lockPath())
	locked, err := lock.TryRLockContext(ctx, lockRetryInterval)
	switch {
	case err != nil && ctx.Err() != nil:
		return nil, errors.CacheError("cache read cancelled", ctx.Err())
	case err != nil || !locked:
		// lock file unavailable (read-only mount); the document is immutable after startup
		s.logger.Debug("Reading %s without shared lock: %v", s.path, err)
	default:
		defer lock.Unlock()
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, errors.NotFound("cache document " + s.path)
	}
	if err != nil {
		return nil, errors.CacheError(fmt.Sprintf("failed to read %s", s.path), err)
	}

	root := hierarchy.New()
	if err := json.Unmarshal(data, root); err != nil {
		return nil, errors.CacheError(fmt.Sprintf("cache document %s is corrupt", s.path), err)
	}
	return root, nil
}
