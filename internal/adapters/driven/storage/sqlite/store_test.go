package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, dir
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, dir := setupTestStore(t)

	assert.Equal(t, filepath.Join(dir, "docdeck.db"), store.Path())
	assert.FileExists(t, store.Path())

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := setupTestStore(t)

	val, err := store.Get(context.Background(), "slide_presentations")

	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestStore_SetAndReplace(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Set(ctx, "pdf_documents", []byte(`[{"id":"a"}]`)))
	require.NoError(t, store.Set(ctx, "pdf_documents", []byte(`[{"id":"b"}]`)))

	val, err := store.Get(ctx, "pdf_documents")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b"}]`, string(val))
}

func TestStore_ReopenKeepsDataAndSkipsMigrations(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "document_summaries", []byte(`[]`)))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	val, err := reopened.Get(ctx, "document_summaries")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(val))

	version, err := reopened.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"010_later.up.sql":  {Data: []byte("SELECT 1;")},
		"002_next.up.sql":   {Data: []byte("SELECT 1;")},
		"001_kv.up.sql":     {Data: []byte("SELECT 1;")},
		"002_next.down.sql": {Data: []byte("SELECT 1;")},
		"readme.up.sql":     {Data: []byte("SELECT 1;")},
	}

	pending, err := pendingMigrations(fsys, 1)

	require.NoError(t, err)
	assert.Equal(t, []migration{
		{version: 2, name: "002_next.up.sql"},
		{version: 10, name: "010_later.up.sql"},
	}, pending)
}

func TestMigrate_FailedMigrationIsNotRecorded(t *testing.T) {
	store, _ := setupTestStore(t)
	fsys := fstest.MapFS{
		"002_broken.up.sql": {Data: []byte("CREATE TABLE nope (;")},
	}

	err := store.migrate(fsys)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_broken.up.sql")
	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}
