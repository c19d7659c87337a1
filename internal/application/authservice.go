package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// LoginResult is a freshly issued session for a verified account.
type LoginResult struct {
	Token     string
	UserID    string
	Username  string
	Role      model.Role
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

// AuthService registers accounts and exchanges credentials for session tokens.
type AuthService struct {
	credentials driven.CredentialStore
	hasher      driven.PasswordHasher
	issuer      driven.TokenIssuer
	ttl         time.Duration
	now         func() time.Time
}

// NewAuthService creates a new AuthService. ttl is reported back to clients
// as expires_in and must match the issuer's configuration.
func NewAuthService(
	credentials driven.CredentialStore,
	hasher driven.PasswordHasher,
	issuer driven.TokenIssuer,
	ttl time.Duration,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		hasher:      hasher,
		issuer:      issuer,
		ttl:         ttl,
		now:         time.Now,
	}
}

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in credentialsInput) validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 64), validation.Match(usernamePattern)),
		validation.Field(&in.Password, validation.Required, validation.Length(6, 72)),
	))
}

// Register creates an account for role and returns its identifier.
// driven.ErrUsernameTaken is returned when the username exists for the role.
func (s *AuthService) Register(ctx context.Context, role model.Role, username, password string) (string, error) {
	if _, ok := model.ParseRole(string(role)); !ok {
		return "", invalid(fmt.Sprintf("unknown role %q", role))
	}

	in := credentialsInput{Username: strings.TrimSpace(username), Password: password}
	if err := in.validate(); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}

	cred := model.Credential{
		ID:           uuid.NewString(),
		Role:         role,
		Username:     in.Username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.credentials.Create(ctx, cred); err != nil {
		return "", err
	}

	return cred.ID, nil
}

// Verify checks a username and password against the role's credential store.
// It returns the account identifier and true only when the password matches.
func (s *AuthService) Verify(ctx context.Context, role model.Role, username, password string) (string, bool, error) {
	if _, ok := model.ParseRole(string(role)); !ok {
		return "", false, invalid(fmt.Sprintf("unknown role %q", role))
	}

	cred, err := s.credentials.GetByUsername(ctx, role, strings.TrimSpace(username))
	if errors.Is(err, driven.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	ok, err := s.hasher.Compare(cred.PasswordHash, password)
	if err != nil || !ok {
		return "", false, err
	}

	return cred.ID, true, nil
}

// Login verifies the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, role model.Role, username, password string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, invalid("username and password are required")
	}

	id, ok, err := s.Verify(ctx, role, username, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	username = strings.TrimSpace(username)
	token, expiresAt, err := s.issuer.Issue(id, username, role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		UserID:    id,
		Username:  username,
		Role:      role,
		ExpiresAt: expiresAt,
		ExpiresIn: s.ttl,
	}, nil
}

// Me re-reads the caller's credential so a token for a removed account is
// reported as driven.ErrNotFound.
func (s *AuthService) Me(ctx context.Context, claims model.Claims) (*model.Credential, error) {
	return s.credentials.GetByID(ctx, claims.Role, claims.UserID)
}
