package driven

import (
	"errors"
	"time"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

// Token verification failures. All of them mean the request is unauthenticated.
var (
	ErrMissingToken   = errors.New("token is missing")
	ErrInvalidToken   = errors.New("token is invalid")
	ErrExpiredToken   = errors.New("token has expired")
	ErrMalformedToken = errors.New("token is missing required claims")
)

// PasswordHasher hashes passwords with a salted one-way function.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare reports whether password matches hash. The comparison is constant time.
	Compare(hash, password string) (bool, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID, username string, role model.Role) (token string, expiresAt time.Time, err error)
}

// TokenVerifier validates a raw Authorization header value and returns the
// claims it carries. Errors are one of ErrMissingToken, ErrInvalidToken,
// ErrExpiredToken or ErrMalformedToken.
type TokenVerifier interface {
	Verify(rawHeader string) (model.Claims, error)
}
