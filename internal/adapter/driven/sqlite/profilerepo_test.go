package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

func strPtr(s string) *string { return &s }

func TestProfileRepo_UpsertCreatesThenMerges(t *testing.T) {
	repo := NewProfileRepo(setupTestDB(t, SchemaProfiles))
	ctx := context.Background()

	p, created, err := repo.Upsert(ctx, "u-1", "alice", model.ProfilePatch{
		EmailAddress: strPtr("alice@example.com"),
		Gender:       strPtr("female"),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice@example.com", p.EmailAddress)
	assert.Empty(t, p.Birthday)

	p2, created, err := repo.Upsert(ctx, "u-1", "alice", model.ProfilePatch{Birthday: strPtr("1990-05-01")})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, p2.ID)
	assert.Equal(t, "1990-05-01", p2.Birthday)
	assert.Equal(t, "alice@example.com", p2.EmailAddress, "absent fields keep stored values")
	assert.Equal(t, "female", p2.Gender)
}

func TestProfileRepo_ConcurrentFirstUpsertCreatesOnce(t *testing.T) {
	// A WAL file database lets readers run while the writer holds a
	// transaction; shared-cache memory databases report table locks instead.
	db, err := Open(filepath.Join(t.TempDir(), "profile.db"), SchemaProfiles)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewProfileRepo(db)
	ctx := context.Background()

	const writers = 8
	var (
		wg      sync.WaitGroup
		created atomic.Int32
		errs    = make(chan error, writers)
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, c, err := repo.Upsert(ctx, "u-1", "alice", model.ProfilePatch{Gender: strPtr("female")})
			if err != nil {
				errs <- err
				return
			}
			if c {
				created.Add(1)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), created.Load())
}

func TestProfileRepo_GetAndDelete(t *testing.T) {
	repo := NewProfileRepo(setupTestDB(t, SchemaProfiles))
	ctx := context.Background()

	_, err := repo.Get(ctx, "u-1")
	assert.ErrorIs(t, err, driven.ErrNotFound)

	_, _, err = repo.Upsert(ctx, "u-1", "alice", model.ProfilePatch{Gender: strPtr("x")})
	require.NoError(t, err)

	_, err = repo.Get(ctx, "u-2")
	assert.ErrorIs(t, err, driven.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "u-2"), driven.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "u-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u-1"), driven.ErrNotFound)
}
