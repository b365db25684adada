package cache

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"hierview/domain/hierarchy"
	"hierview/internal"
	"hierview/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, name string) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), name), internal.NewLogger(io.Discard, internal.LogLevelError))
}

func sampleTree() *hierarchy.Node {
	root := hierarchy.New()
	x := root.GetOrCreate("x")
	x.GetOrCreate("y")
	x.GetOrCreate("z")
	root.GetOrCreate("w")
	return root
}

func TestWriteThenRead(t *testing.T) {
	store := newTestStore(t, "hir_data.json")
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, sampleTree()))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, `{"x":{"y":{},"z":{}},"w":{}}`, string(raw))

	root, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "w"}, root.Keys())
	assert.True(t, root.Equal(sampleTree()))
}

func TestReadIsRepeatable(t *testing.T) {
	store := newTestStore(t, "hir_data.json")
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, sampleTree()))

	first, err := store.Read(ctx)
	require.NoError(t, err)
	second, err := store.Read(ctx)
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, a, b)
}

func TestWriteOverwrites(t *testing.T) {
	store := newTestStore(t, "hir_data.json")
	ctx := context.Background()

	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"stale":{"old":{}},"padding":{}}`), 0644))
	require.NoError(t, store.Write(ctx, hierarchy.New()))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(store.Path()), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestWriteCreatesParentDirectories(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "dir", "cache.json"), internal.NewLogger(io.Discard, internal.LogLevelError))

	require.NoError(t, store.Write(context.Background(), sampleTree()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestWriteUnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// parent "directory" is a regular file
	store := NewStore(filepath.Join(blocker, "cache.json"), internal.NewLogger(io.Discard, internal.LogLevelError))

	err := store.Write(context.Background(), sampleTree())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeCacheError))
}

func TestReadMissing(t *testing.T) {
	store := newTestStore(t, "absent.json")

	_, err := store.Read(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestReadCorrupt(t *testing.T) {
	cases := map[string]string{
		"truncated":   `{"x":{"y":`,
		"not json":    `<html>`,
		"wrong shape": `{"x":["y"]}`,
		"empty":       ``,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			store := newTestStore(t, "hir_data.json")
			require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0644))

			_, err := store.Read(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeCacheError))
		})
	}
}
