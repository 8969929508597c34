package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/portfolio/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_Resolve(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "secret", "tenant1", "ci"))

	tenantID, err := repo.ResolveTenant(ctx, "secret")
	require.NoError(t, err)
	require.Equal(t, "tenant1", tenantID)

	var lastUsed *string
	require.NoError(t, db.QueryRow(`SELECT last_used FROM api_keys WHERE key_hash = ?`, HashToken("secret")).Scan(&lastUsed))
	require.NotNil(t, lastUsed)

	_, err = repo.ResolveTenant(ctx, "wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAPIKeyRepository_Duplicate(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "secret", "tenant1", ""))
	require.ErrorIs(t, repo.Add(ctx, "secret", "tenant2", ""), repository.ErrConflict)
}

func TestHashToken(t *testing.T) {
	require.Len(t, HashToken("abc"), 64)
	require.NotEqual(t, HashToken("abc"), HashToken("abd"))
	require.NotContains(t, HashToken("abc"), "abc")
}
