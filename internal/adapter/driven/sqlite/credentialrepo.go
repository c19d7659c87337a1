package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port interface.
// Each role has its own database file; the repo routes every call by role.
type CredentialRepo struct {
	dbs map[model.Role]*DB
}

// NewCredentialRepo creates a new CredentialRepo over one DB per role.
func NewCredentialRepo(dbs map[model.Role]*DB) *CredentialRepo {
	return &CredentialRepo{dbs: dbs}
}

func (r *CredentialRepo) db(role model.Role) (*DB, error) {
	db, ok := r.dbs[role]
	if !ok {
		return nil, fmt.Errorf("no credential store for role %q", role)
	}
	return db, nil
}

// Create inserts a new credential. A duplicate username for the role is
// rejected by the UNIQUE constraint and reported as ErrUsernameTaken.
func (r *CredentialRepo) Create(ctx context.Context, cred model.Credential) error {
	db, err := r.db(cred.Role)
	if err != nil {
		return err
	}

	const query = `INSERT INTO users (user_id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`
	_, err = db.Writer.ExecContext(ctx, query,
		cred.ID, cred.Username, cred.PasswordHash, formatTime(nowOr(cred.CreatedAt)),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create %s %q: %w", cred.Role, cred.Username, driven.ErrUsernameTaken)
		}
		return fmt.Errorf("create %s %q: %w", cred.Role, cred.Username, err)
	}

	return nil
}

// GetByUsername returns the credential for username, or ErrNotFound.
func (r *CredentialRepo) GetByUsername(ctx context.Context, role model.Role, username string) (*model.Credential, error) {
	const query = `SELECT user_id, username, password_hash, created_at FROM users WHERE username = ?`
	return r.getOne(ctx, role, query, username)
}

// GetByID returns the credential with the given identifier, or ErrNotFound.
func (r *CredentialRepo) GetByID(ctx context.Context, role model.Role, id string) (*model.Credential, error) {
	const query = `SELECT user_id, username, password_hash, created_at FROM users WHERE user_id = ?`
	return r.getOne(ctx, role, query, id)
}

func (r *CredentialRepo) getOne(ctx context.Context, role model.Role, query string, arg string) (*model.Credential, error) {
	db, err := r.db(role)
	if err != nil {
		return nil, err
	}

	var cred model.Credential
	var createdAt string
	err = db.Reader.QueryRowContext(ctx, query, arg).Scan(&cred.ID, &cred.Username, &cred.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s %q: %w", role, arg, driven.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %q: %w", role, arg, err)
	}

	cred.Role = role
	cred.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for %s %q: %w", role, arg, err)
	}

	return &cred, nil
}
