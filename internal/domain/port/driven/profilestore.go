package driven

import (
	"context"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// ProfileStore defines the driven port for profile persistence. A user owns
// at most one profile.
type ProfileStore interface {
	// Upsert creates the owner's profile or applies patch to the existing one.
	// created reports which of the two happened.
	Upsert(ctx context.Context, ownerID, username string, patch model.ProfilePatch) (p *model.Profile, created bool, err error)
	Get(ctx context.Context, ownerID string) (*model.Profile, error)
	Delete(ctx context.Context, ownerID string) error
}
