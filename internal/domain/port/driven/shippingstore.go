package driven

import (
	"context"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// ShippingStore defines the driven port for shipping address persistence.
type ShippingStore interface {
	Create(ctx context.Context, a model.ShippingAddress) (model.ShippingAddress, error)
	List(ctx context.Context, ownerID string) ([]model.ShippingAddress, error)
	Get(ctx context.Context, ownerID string, id int64) (*model.ShippingAddress, error)
	Update(ctx context.Context, ownerID string, id int64, patch model.ShippingPatch) (*model.ShippingAddress, error)
	Delete(ctx context.Context, ownerID string, id int64) error
}
