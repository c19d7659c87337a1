package driven

import "errors"

// Sentinel errors returned by store implementations.
var (
	// ErrNotFound indicates the requested record does not exist or is not
	// owned by the caller. Both cases report this error.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUsernameTaken indicates a credential with the same username already
	// exists for the role.
	ErrUsernameTaken = errors.New("username already exists")
)
