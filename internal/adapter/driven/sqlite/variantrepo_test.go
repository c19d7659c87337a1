package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

func TestVariantRepo_AddBulkSkipsExisting(t *testing.T) {
	repo := NewVariantRepo(setupTestDB(t, SchemaVariants))
	ctx := context.Background()

	added, skipped, err := repo.AddBulk(ctx, "seller-1", []model.Variant{
		{ProductID: 1, Name: "Red", Price: 10, Stock: 3, IsActive: true},
		{ProductID: 1, Name: "Blue", Price: 11, Stock: 0, IsActive: true},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Empty(t, skipped)
	assert.Positive(t, added[0].ID)
	assert.Equal(t, "seller-1", added[0].OwnerID)

	added2, skipped2, err := repo.AddBulk(ctx, "seller-1", []model.Variant{
		{ProductID: 1, Name: "red", Price: 12, IsActive: true},
		{ProductID: 1, Name: "Green", Price: 13, IsActive: true},
	})
	require.NoError(t, err)
	require.Len(t, added2, 1)
	assert.Equal(t, "Green", added2[0].Name)
	require.Len(t, skipped2, 1)
	assert.Equal(t, "red", skipped2[0].Name)
	assert.Equal(t, "Variant already exists", skipped2[0].Reason)
	assert.Equal(t, added[0].ID, skipped2[0].ExistingVariantID)

	// Same name on another product, or for another owner, is not a duplicate.
	added3, skipped3, err := repo.AddBulk(ctx, "seller-2", []model.Variant{{ProductID: 1, Name: "Red", IsActive: true}})
	require.NoError(t, err)
	assert.Len(t, added3, 1)
	assert.Empty(t, skipped3)
}

func TestVariantRepo_ListAndOwnerScoping(t *testing.T) {
	repo := NewVariantRepo(setupTestDB(t, SchemaVariants))
	ctx := context.Background()

	added, _, err := repo.AddBulk(ctx, "seller-1", []model.Variant{
		{ProductID: 1, Name: "Red", IsActive: true},
		{ProductID: 2, Name: "Small", IsActive: true},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)

	byProduct, err := repo.ListByProduct(ctx, "seller-1", 1)
	require.NoError(t, err)
	require.Len(t, byProduct, 1)
	assert.Equal(t, "Red", byProduct[0].Name)
	assert.True(t, byProduct[0].IsActive)

	byOwner, err := repo.ListByOwner(ctx, "seller-1")
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)

	others, err := repo.ListByOwner(ctx, "seller-2")
	require.NoError(t, err)
	assert.Empty(t, others)

	_, err = repo.Get(ctx, "seller-2", added[0].ID)
	assert.ErrorIs(t, err, driven.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "seller-2", added[0].ID), driven.ErrNotFound)
}

func TestVariantRepo_UpdateAndDelete(t *testing.T) {
	repo := NewVariantRepo(setupTestDB(t, SchemaVariants))
	ctx := context.Background()

	added, _, err := repo.AddBulk(ctx, "seller-1", []model.Variant{
		{ProductID: 1, Name: "Red", Price: 10, IsActive: true},
		{ProductID: 1, Name: "Blue", Price: 10, IsActive: true},
	})
	require.NoError(t, err)

	inactive := false
	stock := 7
	updated, err := repo.Update(ctx, "seller-1", added[0].ID, model.VariantPatch{IsActive: &inactive, Stock: &stock})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, "Red", updated.Name)

	rename := "blue"
	_, err = repo.Update(ctx, "seller-1", added[0].ID, model.VariantPatch{Name: &rename})
	assert.ErrorIs(t, err, driven.ErrAlreadyExists)

	require.NoError(t, repo.Delete(ctx, "seller-1", added[0].ID))
	_, err = repo.Get(ctx, "seller-1", added[0].ID)
	assert.ErrorIs(t, err, driven.ErrNotFound)
}
