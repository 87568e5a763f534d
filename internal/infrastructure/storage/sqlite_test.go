package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afisha/internal/infrastructure/storage"
)

func openSQLite(t *testing.T, path string) *storage.SQLite {
	t.Helper()
	db, err := storage.OpenSQLite(context.Background(), path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLite_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t, filepath.Join(t.TempDir(), "state.db"))

	_, found, err := db.Get(ctx, "auth_user")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, db.Set(ctx, "auth_user", `{"email":"a@x.ru"}`))
	require.NoError(t, db.Set(ctx, "auth_user", `{"email":"b@x.ru"}`))
	v, found, err := db.Get(ctx, "auth_user")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"email":"b@x.ru"}`, v)

	require.NoError(t, db.Delete(ctx, "auth_user"))
	_, found, err = db.Get(ctx, "auth_user")
	require.NoError(t, err)
	assert.False(t, found, "tombstones read as absent")
}

func TestSQLite_EmptyValueIsFound(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t, filepath.Join(t.TempDir(), "state.db"))

	require.NoError(t, db.Set(ctx, "auth_token", ""))
	v, found, err := db.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, v)
}

func TestSQLite_WatchSeesOtherHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	tab1 := openSQLite(t, path)
	tab2 := openSQLite(t, path)

	keys := make(chan string, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tab1.Watch(ctx, func(k string) { keys <- k }) }()

	// let the watcher read its starting point
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, tab1.Set(context.Background(), "own", "x"))
	require.NoError(t, tab2.Set(context.Background(), "event_participation", "{}"))

	select {
	case k := <-keys:
		assert.Equal(t, "event_participation", k)
	case <-time.After(2 * time.Second):
		t.Fatal("write of the other handle not reported")
	}

	cancel()
	assert.NoError(t, <-done)
}
