package driven

import (
	"context"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// ReviewStore defines the driven port for review persistence.
type ReviewStore interface {
	Create(ctx context.Context, r model.Review) (model.Review, error)
	// ListAll returns every review from every user, newest first.
	ListAll(ctx context.Context) ([]model.Review, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Review, error)
	Update(ctx context.Context, ownerID string, id int64, patch model.ReviewPatch) (*model.Review, error)
	Delete(ctx context.Context, ownerID string, id int64) error
}
