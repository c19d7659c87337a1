package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

func newTestCredentialRepo(t *testing.T) *CredentialRepo {
	t.Helper()
	return NewCredentialRepo(map[model.Role]*DB{
		model.RoleBuyer:  setupTestDB(t, SchemaCredentials),
		model.RoleSeller: setupTestDB(t, SchemaCredentials),
	})
}

func TestCredentialRepo_CreateAndGet(t *testing.T) {
	repo := newTestCredentialRepo(t)
	ctx := context.Background()

	err := repo.Create(ctx, model.Credential{ID: "u-1", Role: model.RoleBuyer, Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)

	byName, err := repo.GetByUsername(ctx, model.RoleBuyer, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)
	assert.Equal(t, model.RoleBuyer, byName.Role)
	assert.False(t, byName.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, model.RoleBuyer, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestCredentialRepo_DuplicateUsername(t *testing.T) {
	repo := newTestCredentialRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, model.Credential{ID: "u-1", Role: model.RoleBuyer, Username: "alice", PasswordHash: "h"}))

	err := repo.Create(ctx, model.Credential{ID: "u-2", Role: model.RoleBuyer, Username: "alice", PasswordHash: "h"})
	assert.ErrorIs(t, err, driven.ErrUsernameTaken)

	_, err = repo.GetByID(ctx, model.RoleBuyer, "u-2")
	assert.ErrorIs(t, err, driven.ErrNotFound, "second registration must not create a credential")
}

func TestCredentialRepo_RolesAreSeparate(t *testing.T) {
	repo := newTestCredentialRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, model.Credential{ID: "u-1", Role: model.RoleBuyer, Username: "alice", PasswordHash: "h"}))
	require.NoError(t, repo.Create(ctx, model.Credential{ID: "u-2", Role: model.RoleSeller, Username: "alice", PasswordHash: "h"}))

	_, err := repo.GetByID(ctx, model.RoleSeller, "u-1")
	assert.ErrorIs(t, err, driven.ErrNotFound)
}

func TestCredentialRepo_GetMissing(t *testing.T) {
	repo := newTestCredentialRepo(t)

	_, err := repo.GetByUsername(context.Background(), model.RoleSeller, "nobody")
	assert.ErrorIs(t, err, driven.ErrNotFound)
}

func TestCredentialRepo_UnknownRole(t *testing.T) {
	repo := newTestCredentialRepo(t)

	_, err := repo.GetByUsername(context.Background(), model.Role("admin"), "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, driven.ErrNotFound)
}
