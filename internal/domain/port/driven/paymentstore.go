package driven

import (
	"context"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// PaymentStore defines the driven port for payment method persistence.
// Payments are addressed by their client-supplied payment ID.
type PaymentStore interface {
	// Create returns ErrAlreadyExists if the payment ID is already in use by any owner.
	Create(ctx context.Context, p model.Payment) (model.Payment, error)
	List(ctx context.Context, ownerID string) ([]model.Payment, error)
	Get(ctx context.Context, ownerID, paymentID string) (*model.Payment, error)
	Update(ctx context.Context, ownerID, paymentID string, patch model.PaymentPatch) (*model.Payment, error)
	Delete(ctx context.Context, ownerID, paymentID string) error
}
