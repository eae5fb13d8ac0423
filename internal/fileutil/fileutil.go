package fileutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"
)

// LockRetryDelay is how often WriteLocked retries a held lock.
const LockRetryDelay = 100 * time.Millisecond

// WriteAtomic streams fn's output into a temp file beside path and renames it
// over path once fn and Close succeed. On failure path is left untouched.
func WriteAtomic(path string, fn func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	writeErr := fn(tmp)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// LockPath returns the advisory lock file guarding path. Lock files live in
// the system temp directory, keyed by the absolute path, so output
// directories only ever contain reports.
func LockPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("textprint-%016x.lock", xxhash.Sum64String(abs))), nil
}

// WithLock runs fn while holding the advisory lock for path, retrying a held
// lock until ctx is done.
func WithLock(ctx context.Context, path string, fn func() error) error {
	lockPath, err := LockPath(path)
	if err != nil {
		return err
	}
	lock := flock.New(lockPath)
	locked, err := lock.TryLockContext(ctx, LockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire lock for %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("acquire lock for %s: not acquired", path)
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

// WriteLocked is WriteAtomic under the advisory lock for path, so concurrent
// writers to the same file take turns.
func WriteLocked(ctx context.Context, path string, fn func(io.Writer) error) error {
	return WithLock(ctx, path, func() error {
		return WriteAtomic(path, fn)
	})
}
