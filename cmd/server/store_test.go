package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/model"
)

func TestOpenStore_File(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "contacts")
	store, closeStore, err := openStore(ctx, &config.Config{StoreDriver: config.DriverFile, DataDir: dir})
	require.NoError(t, err)
	defer closeStore()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Append(ctx, &model.ContactSubmission{ID: "1", Status: model.StatusNew}))
	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.FileExists(t, filepath.Join(dir, "contacts_list.json"))
}

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	store, closeStore, err := openStore(ctx, &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "contacts.db"),
	})
	require.NoError(t, err)
	defer closeStore()

	require.NoError(t, store.Ping(ctx))
	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := openStore(context.Background(), &config.Config{StoreDriver: "redis"})
	assert.Error(t, err)
}
