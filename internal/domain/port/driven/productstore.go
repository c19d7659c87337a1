package driven

import (
	"context"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// ProductStore defines the driven port for product persistence. Every
// owner-scoped method returns ErrNotFound when the product is absent or
// belongs to another owner.
type ProductStore interface {
	// Create inserts the product and returns it with ID and timestamps set.
	// Returns ErrAlreadyExists if the owner already has a product with the
	// same name (case-insensitive).
	Create(ctx context.Context, p model.Product) (model.Product, error)
	List(ctx context.Context, ownerID string, filter model.ProductFilter) ([]model.Product, error)
	Get(ctx context.Context, ownerID string, id int64) (*model.Product, error)
	Update(ctx context.Context, ownerID string, id int64, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, ownerID string, id int64) error
	// NamesByID returns the names of the owner's products among ids.
	NamesByID(ctx context.Context, ownerID string, ids []int64) (map[int64]string, error)
}
