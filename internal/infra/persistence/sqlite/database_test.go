package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"pushkit/internal/domain/repository"
	"pushkit/internal/infra/persistence/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDatabase(t *testing.T) *sqlite.Database {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "pushkit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestGetMissingKey(t *testing.T) {
	db := createTestDatabase(t)

	_, err := db.Get(context.Background(), repository.StoreIDs, repository.KeyUserID)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	db := createTestDatabase(t)

	require.NoError(t, db.Put(ctx, repository.StoreIDs, repository.KeyUserID, []byte("device-1")))

	value, err := db.Get(ctx, repository.StoreIDs, repository.KeyUserID)
	require.NoError(t, err)
	assert.Equal(t, []byte("device-1"), value)
}

func TestPutOverwrites(t *testing.T) {
	ctx := context.Background()
	db := createTestDatabase(t)

	require.NoError(t, db.Put(ctx, repository.StoreOptions, repository.KeyOptedOut, []byte("false")))
	require.NoError(t, db.Put(ctx, repository.StoreOptions, repository.KeyOptedOut, []byte("true")))

	value, err := db.Get(ctx, repository.StoreOptions, repository.KeyOptedOut)
	require.NoError(t, err)
	assert.Equal(t, []byte("true"), value)
}

func TestStoresAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := createTestDatabase(t)

	require.NoError(t, db.Put(ctx, repository.StoreIDs, "shared-key", []byte("ids")))
	require.NoError(t, db.Put(ctx, repository.StoreOptions, "shared-key", []byte("options")))

	value, err := db.Get(ctx, repository.StoreIDs, "shared-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("ids"), value)

	value, err = db.Get(ctx, repository.StoreOptions, "shared-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("options"), value)
}
