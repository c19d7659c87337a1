package driven

import (
	"context"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// CredentialStore defines the driven port for account persistence. Each role
// is backed by its own store file.
type CredentialStore interface {
	// Create persists a new credential. Returns ErrUsernameTaken if the
	// username already exists for cred.Role.
	Create(ctx context.Context, cred model.Credential) error

	// GetByUsername returns the credential for username, or ErrNotFound.
	GetByUsername(ctx context.Context, role model.Role, username string) (*model.Credential, error)

	// GetByID returns the credential with the given identifier, or ErrNotFound.
	GetByID(ctx context.Context, role model.Role, id string) (*model.Credential, error)
}
