package apikeys

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "keys.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	key := &entities.APIKey{ID: "k1", Name: "ci", Prefix: "lib_abcd", KeyHash: "hash"}
	require.NoError(t, repo.Create(ctx, key))
	assert.False(t, key.CreatedAt.IsZero())

	found, err := repo.FindActiveByPrefix(ctx, "lib_abcd")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "ci", found[0].Name)
	assert.Equal(t, "hash", found[0].KeyHash)

	found, err = repo.FindActiveByPrefix(ctx, "lib_zzzz")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRepository_Revoke(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.APIKey{ID: "k1", Name: "ci", Prefix: "lib_abcd", KeyHash: "hash"}))

	revoked, err := repo.Revoke(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, revoked)

	found, err := repo.FindActiveByPrefix(ctx, "lib_abcd")
	require.NoError(t, err)
	assert.Empty(t, found)

	revoked, err = repo.Revoke(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = repo.Revoke(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, revoked)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsRevoked())
}

func TestRepository_TouchLastUsed(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.APIKey{ID: "k1", Prefix: "lib_abcd"}))

	at := time.Now().Truncate(time.Second)
	require.NoError(t, repo.TouchLastUsed(ctx, "k1", at))

	found, err := repo.FindActiveByPrefix(ctx, "lib_abcd")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.NotNil(t, found[0].LastUsedAt)
	assert.True(t, at.Equal(*found[0].LastUsedAt))
}
