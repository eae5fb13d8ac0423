package fileutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	require.NoError(t, WriteAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello world")
		return err
	}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))
}

func TestWriteAtomicKeepsOriginalOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	boom := errors.New("boom")
	err := WriteAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestLockPathIsOutsideTargetDirectory(t *testing.T) {
	dir := t.TempDir()
	a, err := LockPath(filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	b, err := LockPath(filepath.Join(dir, "b.json"))
	require.NoError(t, err)
	again, err := LockPath(filepath.Join(dir, ".", "a.json"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, again)
	assert.Equal(t, filepath.Clean(os.TempDir()), filepath.Dir(a))
}

func TestWriteLockedLeavesOnlyTheReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	require.NoError(t, WriteLocked(context.Background(), path, func(w io.Writer) error {
		_, err := io.WriteString(w, "{}")
		return err
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.json", entries[0].Name())
}

func TestWriteLockedSerializesWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- WriteLocked(context.Background(), path, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "writer-%d", i)
				return err
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, len("writer-0"), "interleaved output: %q", got)
}

func TestWithLockHonorsContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	lockPath, err := LockPath(path)
	require.NoError(t, err)

	held := flock.New(lockPath)
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer held.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	ran := false
	err = WithLock(ctx, path, func() error {
		ran = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, ran)

	err = WriteLocked(ctx, path, func(w io.Writer) error { return nil })
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}
