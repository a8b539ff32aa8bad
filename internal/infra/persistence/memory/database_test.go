package memory_test

import (
	"context"
	"testing"

	"pushkit/internal/domain/repository"
	"pushkit/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKey(t *testing.T) {
	db := memory.New()

	_, err := db.Get(context.Background(), repository.StoreIDs, repository.KeyUserID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPutGetOverwrite(t *testing.T) {
	ctx := context.Background()
	db := memory.New()

	require.NoError(t, db.Put(ctx, repository.StoreIDs, repository.KeyUserID, []byte("device-1")))
	require.NoError(t, db.Put(ctx, repository.StoreIDs, repository.KeyUserID, []byte("device-2")))

	value, err := db.Get(ctx, repository.StoreIDs, repository.KeyUserID)
	require.NoError(t, err)
	assert.Equal(t, []byte("device-2"), value)
}

func TestValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	db := memory.New()

	original := []byte("device-1")
	require.NoError(t, db.Put(ctx, repository.StoreIDs, repository.KeyUserID, original))
	original[0] = 'X'

	value, err := db.Get(ctx, repository.StoreIDs, repository.KeyUserID)
	require.NoError(t, err)
	assert.Equal(t, []byte("device-1"), value)
}
