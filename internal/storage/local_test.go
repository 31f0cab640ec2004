package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_WriteRead(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "contacts")
	s := NewLocalStorage(dir)

	require.NoError(t, s.Write(ctx, "a.json", []byte(`{"a":1}`)))
	got, err := s.Read(ctx, "a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, s.Write(ctx, "a.json", []byte(`{"a":2}`)))
	got, err = s.Read(ctx, "a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLocalStorage_ReadMissing(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	_, err := s.Read(context.Background(), "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	assert.NoError(t, s.Delete(context.Background(), "missing.json"))
}

func TestLocalStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStorage(t.TempDir())
	require.NoError(t, s.Write(ctx, "a.json", []byte("{}")))
	require.NoError(t, s.Delete(ctx, "a.json"))
	_, err := s.Read(ctx, "a.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_RejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStorage(t.TempDir())
	for _, key := range []string{"", "../escape.json", "sub/dir.json"} {
		assert.Error(t, s.Write(ctx, key, []byte("{}")), "key %q", key)
		_, err := s.Read(ctx, key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestLocalStorage_Ping(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "contacts")
	s := NewLocalStorage(dir)
	require.NoError(t, s.Ping(context.Background()))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Error(t, NewLocalStorage(file).Ping(context.Background()))
}
