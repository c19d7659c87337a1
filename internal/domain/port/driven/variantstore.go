package driven

import (
	"context"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// VariantStore defines the driven port for product variant persistence.
type VariantStore interface {
	// AddBulk inserts variants in one transaction. Entries whose name already
	// exists for the same product and owner are skipped, not failed.
	AddBulk(ctx context.Context, ownerID string, variants []model.Variant) ([]model.Variant, []model.SkippedVariant, error)
	ListByProduct(ctx context.Context, ownerID string, productID int64) ([]model.Variant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Variant, error)
	Get(ctx context.Context, ownerID string, id int64) (*model.Variant, error)
	// Update returns ErrAlreadyExists when a rename collides with a sibling variant.
	Update(ctx context.Context, ownerID string, id int64, patch model.VariantPatch) (*model.Variant, error)
	Delete(ctx context.Context, ownerID string, id int64) error
}
